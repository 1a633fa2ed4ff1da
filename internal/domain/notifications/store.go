package notifications

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrdesk/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

// Insert writes through q so callers can include the row in their own transaction.
func (s *Store) Insert(ctx context.Context, q db.Querier, msg Message) (string, error) {
	var id string
	err := q.QueryRow(ctx, `
    INSERT INTO notifications (employee_id, type, title, message, related_id, related_type)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, msg.EmployeeID, msg.Type, msg.Title, msg.Body, msg.RelatedID, msg.RelatedType).Scan(&id)
	return id, err
}

func (s *Store) Create(ctx context.Context, msg Message) (string, error) {
	return s.Insert(ctx, s.DB, msg)
}

func (s *Store) EmployeeEmail(ctx context.Context, employeeID string) (string, error) {
	var email string
	if err := s.DB.QueryRow(ctx, "SELECT email FROM employees WHERE id = $1", employeeID).Scan(&email); err != nil {
		return "", err
	}
	return email, nil
}

func (s *Store) ListNotifications(ctx context.Context, employeeID string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, type, title, message, related_id, related_type, read_at, created_at
    FROM notifications
    WHERE employee_id = $1 AND ($2 = false OR read_at IS NULL)
    ORDER BY created_at DESC
    LIMIT $3 OFFSET $4
  `, employeeID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.RelatedType, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) CountNotifications(ctx context.Context, employeeID string, unreadOnly bool) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM notifications
    WHERE employee_id = $1 AND ($2 = false OR read_at IS NULL)
  `, employeeID, unreadOnly).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) MarkRead(ctx context.Context, employeeID, notificationID string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read_at = COALESCE(read_at, now())
    WHERE employee_id = $1 AND id = $2
  `, employeeID, notificationID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) MarkAllRead(ctx context.Context, employeeID string) (int64, error) {
	cmd, err := s.DB.Exec(ctx, "UPDATE notifications SET read_at = now() WHERE employee_id = $1 AND read_at IS NULL", employeeID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (s *Store) Delete(ctx context.Context, employeeID, notificationID string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM notifications WHERE employee_id = $1 AND id = $2", employeeID, notificationID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"hrdesk/internal/domain/apperr"
)

var ErrNotificationNotFound = fmt.Errorf("notification %w", apperr.ErrNotFound)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store       StoreAPI
	Mailer      Mailer
	DefaultFrom string
}

func New(store StoreAPI, mailer Mailer, from string) *Service {
	if from == "" {
		from = "no-reply@example.com"
	}
	return &Service{store: store, Mailer: mailer, DefaultFrom: from}
}

func (s *Service) Store() StoreAPI {
	return s.store
}

// Create persists msg on its own and then emails it.
func (s *Service) Create(ctx context.Context, msg Message) error {
	if _, err := s.store.Create(ctx, msg); err != nil {
		return err
	}
	s.Deliver(ctx, msg)
	return nil
}

// Deliver emails already persisted messages. Failures are logged and dropped.
func (s *Service) Deliver(ctx context.Context, msgs ...Message) {
	if s.Mailer == nil {
		return
	}
	for _, msg := range msgs {
		email, err := s.store.EmployeeEmail(ctx, msg.EmployeeID)
		if err != nil {
			slog.Warn("notification email lookup failed", "employeeId", msg.EmployeeID, "err", err)
			continue
		}
		if email == "" {
			continue
		}
		if err := s.Mailer.Send(ctx, s.DefaultFrom, email, msg.Title, msg.Body); err != nil {
			slog.Warn("notification email send failed", "employeeId", msg.EmployeeID, "type", msg.Type, "err", err)
		}
	}
}

func (s *Service) List(ctx context.Context, employeeID string, unreadOnly bool, limit, offset int) ([]Notification, int, error) {
	total, err := s.store.CountNotifications(ctx, employeeID, unreadOnly)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.store.ListNotifications(ctx, employeeID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) UnreadCount(ctx context.Context, employeeID string) (int, error) {
	return s.store.CountNotifications(ctx, employeeID, true)
}

func (s *Service) MarkRead(ctx context.Context, employeeID, notificationID string) error {
	ok, err := s.store.MarkRead(ctx, employeeID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, employeeID string) (int64, error) {
	return s.store.MarkAllRead(ctx, employeeID)
}

func (s *Service) Delete(ctx context.Context, employeeID, notificationID string) error {
	ok, err := s.store.Delete(ctx, employeeID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

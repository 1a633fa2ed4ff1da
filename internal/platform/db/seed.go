package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/platform/config"
)

// Seed creates the bootstrap admin account with an employee record and a full ledger.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" || strings.TrimSpace(cfg.SeedAdminPassword) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	return WithTx(ctx, pool, func(tx pgx.Tx) error {
		var userID, employeeID string
		if err := tx.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING id
  `, email, hash, auth.RoleAdmin).Scan(&userID); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, `
    INSERT INTO employees (user_id, employee_code, name, email, department, designation)
    VALUES ($1, 'ADMIN-001', 'Administrator', $2, 'People', 'Administrator')
    RETURNING id
  `, userID, email).Scan(&employeeID); err != nil {
			return err
		}
		grants := map[string]float64{
			"casual": cfg.LeaveGrants.Casual,
			"sick":   cfg.LeaveGrants.Sick,
			"paid":   cfg.LeaveGrants.Paid,
		}
		for leaveType, days := range grants {
			if _, err := tx.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, leave_type, granted, balance)
    VALUES ($1, $2, $3, $3)
  `, employeeID, leaveType, days); err != nil {
				return err
			}
		}
		return nil
	})
}

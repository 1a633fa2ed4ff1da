// Package audit records who changed what, with before/after snapshots.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrdesk/internal/requestctx"
)

const (
	ActionEmployeeOnboard = "employee.onboard"
	ActionLeaveBalanceSet = "leave_balance.set"
	ActionLeaveSubmit     = "leave.submit"
	ActionLeaveApprove    = "leave.approve"
	ActionLeaveReject     = "leave.reject"
	ActionLeaveCancel     = "leave.cancel"
	ActionLeaveReconcile  = "leave_balance.reconcile"
	ActionSalaryCreate    = "salary.create"
	ActionSalaryUpdate    = "salary.update"
	ActionSalaryDelete    = "salary.delete"
	ActionPayslipGenerate = "payslip.generate"
)

const (
	EntityEmployee     = "employee"
	EntityLeaveRequest = "leave_request"
	EntityLeaveBalance = "leave_balance"
	EntitySalaryRecord = "salary_record"
)

type Entry struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	RequestID  string
	IP         string
	Before     any
	After      any
}

type Event struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	EntityID   string
	ActorUser  string
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

// Record inserts e. RequestID and IP default to the values carried by ctx.
func (s *Service) Record(ctx context.Context, e Entry) error {
	if e.RequestID == "" {
		e.RequestID = requestctx.GetRequestID(ctx)
	}
	if e.IP == "" {
		e.IP = requestctx.GetClientIP(ctx)
	}
	before, err := payload(e.Before)
	if err != nil {
		return fmt.Errorf("audit before: %w", err)
	}
	after, err := payload(e.After)
	if err != nil {
		return fmt.Errorf("audit after: %w", err)
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_user_id, action, entity_type, entity_id, before_json, after_json, request_id, ip)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, e.ActorID, e.Action, e.EntityType, e.EntityID, before, after, e.RequestID, e.IP)
	return err
}

// RecordQuietly records e and only logs a failure; the audited change has already committed.
func (s *Service) RecordQuietly(ctx context.Context, e Entry) {
	if s == nil || s.DB == nil {
		return
	}
	if err := s.Record(ctx, e); err != nil {
		slog.Warn("audit insert failed", "action", e.Action, "entityId", e.EntityID, "err", err)
	}
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildQuery("SELECT COUNT(1)", filter)
	var total int
	err := s.DB.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (s *Service) List(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	cols := "id, actor_user_id, action, entity_type, entity_id, request_id, ip, created_at"
	if includeDetails {
		cols += ", before_json, after_json"
	}
	query, args := buildQuery("SELECT "+cols, filter)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var evt Event
		dest := []any{&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.CreatedAt}
		if includeDetails {
			dest = append(dest, &evt.Before, &evt.After)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

func buildQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_events WHERE 1=1"
	var args []any
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		query += fmt.Sprintf(" AND %s = $%d", column, len(args))
	}
	add("action", filter.Action)
	add("entity_type", filter.EntityType)
	add("entity_id", filter.EntityID)
	add("actor_user_id", filter.ActorUser)
	return query, args
}

func payload(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

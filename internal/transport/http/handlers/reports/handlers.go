package reportshandler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/domain/reports"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

type Reporter interface {
	LeaveReport(ctx context.Context, actor leave.Actor, filter reports.LeaveFilter) (reports.LeaveReport, error)
	PayrollReport(ctx context.Context, role string, filter reports.PayrollFilter) (reports.PayrollReport, error)
}

type Handler struct {
	Service Reporter
	Perms   middleware.PermissionStore
}

func NewHandler(service Reporter, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Get("/leave", h.handleLeave)
		r.With(middleware.RequirePermission(auth.PermPayrollUpdate, h.Perms)).Get("/payroll", h.handlePayroll)
	})
}

func (h *Handler) handleLeave(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	v := shared.NewValidator()

	filter := reports.LeaveFilter{
		EmployeeID: strings.TrimSpace(query.Get("employeeId")),
		LeaveType:  strings.ToLower(strings.TrimSpace(query.Get("leaveType"))),
	}
	if filter.EmployeeID != "" {
		v.UUID("employeeId", filter.EmployeeID)
	}
	v.Enum("leaveType", filter.LeaveType, leave.Types, "must be one of casual, sick, paid, unpaid")
	if raw := strings.TrimSpace(query.Get("from")); raw != "" {
		filter.From, _ = v.Date("from", raw)
	}
	if raw := strings.TrimSpace(query.Get("to")); raw != "" {
		filter.To, _ = v.Date("to", raw)
	}
	if v.Reject(w, reqID) {
		return
	}

	user, _ := middleware.GetUser(r.Context())
	actor := leave.Actor{UserID: user.UserID, EmployeeID: user.EmployeeID, Role: user.RoleName}
	report, err := h.Service.LeaveReport(r.Context(), actor, filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, report, reqID)
}

func (h *Handler) handlePayroll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	v := shared.NewValidator()

	filter := reports.PayrollFilter{EmployeeCode: strings.TrimSpace(query.Get("employeeCode"))}
	if raw := strings.TrimSpace(query.Get("month")); raw != "" {
		month, err := payroll.ParseMonth(raw)
		if err != nil {
			v.Add("month", err.Error())
		}
		filter.MonthNumber = int(month)
	}
	if raw := strings.TrimSpace(query.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			v.Add("year", "must be a number")
		}
		filter.Year = year
	}
	if v.Reject(w, reqID) {
		return
	}

	user, _ := middleware.GetUser(r.Context())
	report, err := h.Service.PayrollReport(r.Context(), user.RoleName, filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, report, reqID)
}

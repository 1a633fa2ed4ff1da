package corehandler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/apperr"
	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/core"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

var errOutOfScope = fmt.Errorf("employee is outside your scope: %w", apperr.ErrForbidden)

type Handler struct {
	Service *core.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
	Metrics *metrics.Collector
}

func NewHandler(service *core.Service, perms middleware.PermissionStore, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleOnboard)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleGetEmployee)
			r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/team", h.handleTeam)
			r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/leave-balance", h.handleGetLeaveBalance)
			r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Put("/leave-balance", h.handleSetLeaveBalance)
		})
	})
}

// canView reports whether user may read emp: staff see everyone, managers their reports, everyone themselves.
func canView(user auth.UserContext, emp *core.Employee) bool {
	if auth.SeesAllRecords(user.RoleName) {
		return true
	}
	if user.EmployeeID != "" && emp.ID == user.EmployeeID {
		return true
	}
	return user.RoleName == auth.RoleManager && user.EmployeeID != "" && emp.ManagerID == user.EmployeeID
}

func (h *Handler) visibleEmployee(ctx context.Context, user auth.UserContext, employeeID string) (*core.Employee, error) {
	emp, err := h.Service.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !canView(user, emp) {
		return nil, errOutOfScope
	}
	core.FilterEmployeeFields(emp, user)
	return emp, nil
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	query := r.URL.Query()
	filter := core.EmployeeFilter{
		Department: strings.TrimSpace(query.Get("department")),
		ManagerID:  strings.TrimSpace(query.Get("managerId")),
		Search:     strings.TrimSpace(query.Get("q")),
	}

	if !auth.SeesAllRecords(user.RoleName) {
		if user.EmployeeID == "" {
			api.Success(w, map[string]any{"items": []core.Employee{}, "total": 0}, reqID)
			return
		}
		if user.RoleName != auth.RoleManager {
			emp, err := h.visibleEmployee(r.Context(), user, user.EmployeeID)
			if err != nil {
				api.FailError(w, err, reqID)
				return
			}
			api.Success(w, map[string]any{"items": []core.Employee{*emp}, "total": 1}, reqID)
			return
		}
		filter.ManagerID = user.EmployeeID
	}

	items, total, err := h.Service.ListEmployees(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	for i := range items {
		core.FilterEmployeeFields(&items[i], user)
	}
	if items == nil {
		items = []core.Employee{}
	}
	api.Success(w, map[string]any{"items": items, "total": total}, reqID)
}

func (h *Handler) handleOnboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload core.OnboardInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	if strings.EqualFold(payload.Role, auth.RoleAdmin) && user.RoleName != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "only admins can create admins", reqID)
		return
	}

	emp, err := h.Service.Onboard(r.Context(), payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    user.UserID,
		Action:     audit.ActionEmployeeOnboard,
		EntityType: audit.EntityEmployee,
		EntityID:   emp.ID,
		After:      emp,
	})
	h.Metrics.Event(audit.ActionEmployeeOnboard)
	api.Created(w, emp, reqID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	emp, err := h.visibleEmployee(r.Context(), user, chi.URLParam(r, "employeeID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleTeam(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	managerID := chi.URLParam(r, "employeeID")

	if !auth.SeesAllRecords(user.RoleName) && managerID != user.EmployeeID {
		api.FailError(w, errOutOfScope, reqID)
		return
	}
	members, err := h.Service.FindTeamMembers(r.Context(), managerID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	for i := range members {
		core.FilterEmployeeFields(&members[i], user)
	}
	if members == nil {
		members = []core.Employee{}
	}
	api.Success(w, members, reqID)
}

func (h *Handler) handleGetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if _, err := h.visibleEmployee(r.Context(), user, employeeID); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	ledger, err := h.Service.GetLeaveBalance(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, ledger, reqID)
}

func (h *Handler) handleSetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	var payload core.Ledger
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	before, err := h.Service.GetLeaveBalance(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	ledger, err := h.Service.SetLeaveBalance(r.Context(), employeeID, payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    user.UserID,
		Action:     audit.ActionLeaveBalanceSet,
		EntityType: audit.EntityLeaveBalance,
		EntityID:   employeeID,
		Before:     before,
		After:      ledger,
	})
	h.Metrics.Event(audit.ActionLeaveBalanceSet)
	api.Success(w, ledger, reqID)
}

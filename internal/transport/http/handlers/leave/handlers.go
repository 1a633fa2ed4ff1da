package leavehandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/core"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

// Workflow is the leave service surface the handlers drive.
type Workflow interface {
	Submit(ctx context.Context, actor leave.Actor, in leave.SubmitInput) (leave.LeaveRequest, error)
	Approve(ctx context.Context, approver leave.Actor, id string) (leave.LeaveRequest, error)
	Reject(ctx context.Context, approver leave.Actor, id, reason string) (leave.LeaveRequest, error)
	Cancel(ctx context.Context, actor leave.Actor, id string) (leave.LeaveRequest, error)
	Get(ctx context.Context, actor leave.Actor, id string) (leave.LeaveRequest, error)
	List(ctx context.Context, actor leave.Actor, filter leave.ListFilter) (leave.RequestList, error)
	PendingQueue(ctx context.Context, actor leave.Actor, filter leave.ListFilter) (leave.RequestList, error)
	BalanceSummary(ctx context.Context, employeeID string) (core.LeaveBalance, error)
	Dashboard(ctx context.Context, actor leave.Actor) (leave.Dashboard, error)
	Reconcile(ctx context.Context, actor leave.Actor, employeeID string) (core.Ledger, error)
}

type Handler struct {
	Service Workflow
	Perms   middleware.PermissionStore
	Audit   *audit.Service
	Metrics *metrics.Collector
}

func NewHandler(service Workflow, perms middleware.PermissionStore, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Post("/requests", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests", h.handleList)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Get("/requests/pending", h.handlePending)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/requests/{requestID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove, h.Perms)).Post("/requests/{requestID}/reject", h.handleReject)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite, h.Perms)).Post("/requests/{requestID}/cancel", h.handleCancel)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/balance", h.handleBalance)
		r.With(middleware.RequirePermission(auth.PermLeaveRead, h.Perms)).Get("/dashboard", h.handleDashboard)
		r.With(middleware.RequirePermission(auth.PermLeaveAdmin, h.Perms)).Post("/balance/{employeeID}/reconcile", h.handleReconcile)
	})
}

func actorFrom(r *http.Request) leave.Actor {
	user, _ := middleware.GetUser(r.Context())
	return leave.Actor{UserID: user.UserID, EmployeeID: user.EmployeeID, Role: user.RoleName}
}

// requestID returns the path id, answering 404 for anything that cannot be a request id.
func requestID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "requestID")
	if !shared.ValidID(id) {
		api.FailError(w, leave.ErrRequestNotFound, middleware.GetRequestID(r.Context()))
		return "", false
	}
	return id, true
}

type submitRequest struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)

	var payload submitRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	v := shared.NewValidator()
	in := leave.SubmitInput{LeaveType: payload.LeaveType, Reason: payload.Reason}
	if strings.TrimSpace(payload.StartDate) != "" {
		in.StartDate, _ = v.Date("startDate", payload.StartDate)
	}
	if strings.TrimSpace(payload.EndDate) != "" {
		in.EndDate, _ = v.Date("endDate", payload.EndDate)
	}
	if v.Reject(w, reqID) {
		return
	}

	req, err := h.Service.Submit(r.Context(), actor, in)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    actor.UserID,
		Action:     audit.ActionLeaveSubmit,
		EntityType: audit.EntityLeaveRequest,
		EntityID:   req.ID,
		After:      req,
	})
	h.Metrics.Event(audit.ActionLeaveSubmit)
	api.Created(w, req, reqID)
}

func parseListFilter(r *http.Request, v *shared.Validator) leave.ListFilter {
	query := r.URL.Query()
	page := shared.ParsePagination(r, 50, 100)
	filter := leave.ListFilter{
		Status:    strings.ToLower(strings.TrimSpace(query.Get("status"))),
		LeaveType: strings.ToLower(strings.TrimSpace(query.Get("leaveType"))),
		Stage:     leave.Stage(strings.ToLower(strings.TrimSpace(query.Get("stage")))),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	v.Enum("status", filter.Status, leave.Statuses, "must be one of pending, approved, rejected, cancelled")
	v.Enum("leaveType", filter.LeaveType, leave.Types, "must be one of casual, sick, paid, unpaid")
	if filter.Stage != "" && !filter.Stage.Valid() {
		v.Add("stage", "is not a known stage")
	}
	return filter
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	filter := parseListFilter(r, v)
	if v.Reject(w, reqID) {
		return
	}
	list, err := h.Service.List(r.Context(), actorFrom(r), filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	filter := parseListFilter(r, v)
	if v.Reject(w, reqID) {
		return
	}
	list, err := h.Service.PendingQueue(r.Context(), actorFrom(r), filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := requestID(w, r)
	if !ok {
		return
	}
	req, err := h.Service.Get(r.Context(), actorFrom(r), id)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, req, reqID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)
	id, ok := requestID(w, r)
	if !ok {
		return
	}
	req, err := h.Service.Approve(r.Context(), actor, id)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    actor.UserID,
		Action:     audit.ActionLeaveApprove,
		EntityType: audit.EntityLeaveRequest,
		EntityID:   req.ID,
		After:      map[string]any{"stage": req.Stage, "status": req.Status},
	})
	h.Metrics.Event(audit.ActionLeaveApprove)
	api.Success(w, req, reqID)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)
	id, ok := requestID(w, r)
	if !ok {
		return
	}

	var payload rejectRequest
	if r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &payload); err != nil {
			api.FailError(w, err, reqID)
			return
		}
	}
	req, err := h.Service.Reject(r.Context(), actor, id, strings.TrimSpace(payload.Reason))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    actor.UserID,
		Action:     audit.ActionLeaveReject,
		EntityType: audit.EntityLeaveRequest,
		EntityID:   req.ID,
		After:      map[string]any{"stage": req.Stage, "reason": req.RejectionReason},
	})
	h.Metrics.Event(audit.ActionLeaveReject)
	api.Success(w, req, reqID)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)
	id, ok := requestID(w, r)
	if !ok {
		return
	}
	req, err := h.Service.Cancel(r.Context(), actor, id)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    actor.UserID,
		Action:     audit.ActionLeaveCancel,
		EntityType: audit.EntityLeaveRequest,
		EntityID:   req.ID,
	})
	h.Metrics.Event(audit.ActionLeaveCancel)
	api.Success(w, req, reqID)
}

// handleBalance returns the caller's summary; staff may pass employeeId to read another employee's.
func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)

	employeeID := actor.EmployeeID
	if requested := strings.TrimSpace(r.URL.Query().Get("employeeId")); requested != "" && requested != employeeID {
		if !auth.SeesAllRecords(actor.Role) {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot read another employee's balance", reqID)
			return
		}
		employeeID = requested
	}
	if employeeID == "" {
		api.FailError(w, leave.ErrNoEmployee, reqID)
		return
	}
	if !shared.ValidID(employeeID) {
		api.FailError(w, leave.ErrEmployeeNotFound, reqID)
		return
	}
	summary, err := h.Service.BalanceSummary(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	dashboard, err := h.Service.Dashboard(r.Context(), actorFrom(r))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, dashboard, reqID)
}

func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.ValidID(employeeID) {
		api.FailError(w, leave.ErrEmployeeNotFound, reqID)
		return
	}

	ledger, err := h.Service.Reconcile(r.Context(), actor, employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    actor.UserID,
		Action:     audit.ActionLeaveReconcile,
		EntityType: audit.EntityLeaveBalance,
		EntityID:   employeeID,
		After:      ledger,
	})
	h.Metrics.Event(audit.ActionLeaveReconcile)
	api.Success(w, ledger, reqID)
}

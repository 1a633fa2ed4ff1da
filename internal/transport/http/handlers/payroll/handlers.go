package payrollhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

const createEndpoint = "salary.create"

type Payroll interface {
	CreateSalaryRecord(ctx context.Context, actor payroll.Actor, in payroll.CreateInput) (payroll.SalaryRecord, error)
	UpdateSalaryRecord(ctx context.Context, actor payroll.Actor, id string, in payroll.UpdateInput) (payroll.SalaryRecord, error)
	GetSalaryRecord(ctx context.Context, actor payroll.Actor, id string) (payroll.SalaryRecord, error)
	ListSalaryRecords(ctx context.Context, actor payroll.Actor, filter payroll.ListFilter) (payroll.RecordList, error)
	DeleteSalaryRecord(ctx context.Context, actor payroll.Actor, id string) error
	GeneratePayslip(ctx context.Context, actor payroll.Actor, id string) (payroll.SalaryRecord, error)
	DownloadPayslip(ctx context.Context, actor payroll.Actor, id string) (payroll.Payslip, error)
}

type Idempotency interface {
	Check(ctx context.Context, userID, endpoint, key, requestHash string) (json.RawMessage, bool, error)
	Save(ctx context.Context, userID, endpoint, key, requestHash string, response json.RawMessage) error
}

type Handler struct {
	Service     Payroll
	Perms       middleware.PermissionStore
	Idempotency Idempotency
	Audit       *audit.Service
	Metrics     *metrics.Collector
}

func NewHandler(service Payroll, perms middleware.PermissionStore, idem Idempotency, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Idempotency: idem, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/", h.handleList)
		r.Route("/{salaryID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermPayrollUpdate, h.Perms)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Delete("/", h.handleDelete)
			r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/payslip", h.handleGeneratePayslip)
			r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/payslip", h.handleDownloadPayslip)
		})
	})
}

func actorFrom(r *http.Request) payroll.Actor {
	user, _ := middleware.GetUser(r.Context())
	return payroll.Actor{UserID: user.UserID, EmployeeID: user.EmployeeID, Role: user.RoleName}
}

// handleCreate honors Idempotency-Key: a retried request with the same body replays the first response.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)

	raw, err := shared.ReadBody(r)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	key := strings.TrimSpace(r.Header.Get(middleware.IdempotencyHeader))
	hash := middleware.RequestHash(raw)
	if key != "" && h.Idempotency != nil {
		stored, found, err := h.Idempotency.Check(r.Context(), actor.UserID, createEndpoint, key, hash)
		if errors.Is(err, middleware.ErrIdempotencyConflict) {
			api.Fail(w, http.StatusConflict, "idempotency_conflict", err.Error(), reqID)
			return
		}
		if err != nil {
			api.FailError(w, err, reqID)
			return
		}
		if found {
			h.Metrics.Event("salary.create.replayed")
			api.Created(w, stored, reqID)
			return
		}
	}

	var payload payroll.CreateInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	rec, err := h.Service.CreateSalaryRecord(r.Context(), actor, payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}

	if key != "" && h.Idempotency != nil {
		encoded, err := json.Marshal(rec)
		if err != nil {
			slog.Warn("idempotency response marshal failed", "salaryId", rec.ID, "err", err)
		} else if err := h.Idempotency.Save(r.Context(), actor.UserID, createEndpoint, key, hash, encoded); err != nil {
			slog.Warn("idempotency save failed", "salaryId", rec.ID, "err", err)
		}
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    actor.UserID,
		Action:     audit.ActionSalaryCreate,
		EntityType: audit.EntitySalaryRecord,
		EntityID:   rec.ID,
		After:      rec,
	})
	h.Metrics.Event(audit.ActionSalaryCreate)
	api.Created(w, rec, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	page := shared.ParsePagination(r, 50, 100)

	filter := payroll.ListFilter{
		EmployeeCode: strings.TrimSpace(query.Get("employeeCode")),
		Status:       strings.ToLower(strings.TrimSpace(query.Get("status"))),
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
	v := shared.NewValidator()
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
	v.Enum("status", filter.Status, payroll.Statuses, "must be one of pending, approved, paid")
	if v.Reject(w, reqID) {
		return
	}

	list, err := h.Service.ListSalaryRecords(r.Context(), actorFrom(r), filter)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	rec, err := h.Service.GetSalaryRecord(r.Context(), actorFrom(r), chi.URLParam(r, "salaryID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, rec, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)
	id := chi.URLParam(r, "salaryID")

	var payload payroll.UpdateInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	before, err := h.Service.GetSalaryRecord(r.Context(), actor, id)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	rec, err := h.Service.UpdateSalaryRecord(r.Context(), actor, id, payload)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    actor.UserID,
		Action:     audit.ActionSalaryUpdate,
		EntityType: audit.EntitySalaryRecord,
		EntityID:   rec.ID,
		Before:     before,
		After:      rec,
	})
	h.Metrics.Event(audit.ActionSalaryUpdate)
	api.Success(w, rec, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)
	id := chi.URLParam(r, "salaryID")

	if err := h.Service.DeleteSalaryRecord(r.Context(), actor, id); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    actor.UserID,
		Action:     audit.ActionSalaryDelete,
		EntityType: audit.EntitySalaryRecord,
		EntityID:   id,
	})
	h.Metrics.Event(audit.ActionSalaryDelete)
	api.Success(w, map[string]string{"id": id, "status": "deleted"}, reqID)
}

func (h *Handler) handleGeneratePayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor := actorFrom(r)

	rec, err := h.Service.GeneratePayslip(r.Context(), actor, chi.URLParam(r, "salaryID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Audit.RecordQuietly(r.Context(), audit.Entry{
		ActorID:    actor.UserID,
		Action:     audit.ActionPayslipGenerate,
		EntityType: audit.EntitySalaryRecord,
		EntityID:   rec.ID,
		After:      map[string]any{"status": rec.Status},
	})
	h.Metrics.Event(audit.ActionPayslipGenerate)
	api.Success(w, rec, reqID)
}

func (h *Handler) handleDownloadPayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	slip, err := h.Service.DownloadPayslip(r.Context(), actorFrom(r), chi.URLParam(r, "salaryID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+slip.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(slip.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(slip.Content); err != nil {
		slog.Warn("payslip write failed", "requestId", reqID, "err", err)
	}
}

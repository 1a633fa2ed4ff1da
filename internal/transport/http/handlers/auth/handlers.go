package authhandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/core"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
}

type Profiles interface {
	GetEmployee(ctx context.Context, employeeID string) (*core.Employee, error)
}

type Handler struct {
	Auth     Authenticator
	Profiles Profiles
	Metrics  *metrics.Collector
}

func NewHandler(authSvc Authenticator, profiles Profiles, collector *metrics.Collector) *Handler {
	return &Handler{Auth: authSvc, Profiles: profiles, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.With(middleware.RequireUser).Get("/auth/me", h.HandleMe)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("email", payload.Email, "is required")
	v.Required("password", payload.Password, "is required")
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Auth.Login(r.Context(), strings.ToLower(strings.TrimSpace(payload.Email)), payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.Metrics.Event("auth.login_failed")
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	h.Metrics.Event("auth.login")
	api.Success(w, result, reqID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	out := map[string]any{
		"user":        user,
		"permissions": auth.RolePermissions[user.RoleName],
	}
	if user.EmployeeID != "" && h.Profiles != nil {
		emp, err := h.Profiles.GetEmployee(r.Context(), user.EmployeeID)
		switch {
		case errors.Is(err, core.ErrEmployeeNotFound):
			slog.Warn("token references missing employee", "userId", user.UserID, "employeeId", user.EmployeeID)
		case err != nil:
			api.FailError(w, err, reqID)
			return
		default:
			out["employee"] = emp
		}
	}
	api.Success(w, out, reqID)
}

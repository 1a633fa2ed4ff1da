package notificationshandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

type Inbox interface {
	List(ctx context.Context, employeeID string, unreadOnly bool, limit, offset int) ([]notifications.Notification, int, error)
	UnreadCount(ctx context.Context, employeeID string) (int, error)
	MarkRead(ctx context.Context, employeeID, notificationID string) error
	MarkAllRead(ctx context.Context, employeeID string) (int64, error)
	Delete(ctx context.Context, employeeID, notificationID string) error
}

type Handler struct {
	Service Inbox
}

func NewHandler(service Inbox) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Get("/unread-count", h.handleUnreadCount)
		r.Post("/read-all", h.handleMarkAllRead)
		r.Post("/{notificationID}/read", h.handleMarkRead)
		r.Delete("/{notificationID}", h.handleDelete)
	})
}

// Notifications are addressed to employees; accounts without an employee record have an empty inbox.
func recipient(r *http.Request) string {
	user, _ := middleware.GetUser(r.Context())
	return user.EmployeeID
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := recipient(r)
	if employeeID == "" {
		w.Header().Set("X-Total-Count", "0")
		api.Success(w, []notifications.Notification{}, reqID)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unreadOnly"))
	items, total, err := h.Service.List(r.Context(), employeeID, unreadOnly, page.Limit, page.Offset)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	if items == nil {
		items = []notifications.Notification{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, items, reqID)
}

func (h *Handler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := recipient(r)
	if employeeID == "" {
		api.Success(w, map[string]int{"count": 0}, reqID)
		return
	}
	count, err := h.Service.UnreadCount(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]int{"count": count}, reqID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	notificationID := chi.URLParam(r, "notificationID")
	if recipient(r) == "" || !shared.ValidID(notificationID) {
		api.FailError(w, notifications.ErrNotificationNotFound, reqID)
		return
	}
	if err := h.Service.MarkRead(r.Context(), recipient(r), notificationID); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"status": "read"}, reqID)
}

func (h *Handler) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := recipient(r)
	if employeeID == "" {
		api.Success(w, map[string]int64{"updated": 0}, reqID)
		return
	}
	updated, err := h.Service.MarkAllRead(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]int64{"updated": updated}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	notificationID := chi.URLParam(r, "notificationID")
	if recipient(r) == "" || !shared.ValidID(notificationID) {
		api.FailError(w, notifications.ErrNotificationNotFound, reqID)
		return
	}
	if err := h.Service.Delete(r.Context(), recipient(r), notificationID); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}

package audithandler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/transport/http/middleware"
)

func TestFilterFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/audit/events?action=+leave.approve+&entityType=leave_request&entityId=abc&actorUserId=u-1", nil)
	got := filterFrom(req)
	want := audit.Filter{Action: "leave.approve", EntityType: "leave_request", EntityID: "abc", ActorUser: "u-1"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestEventsRequireAuditPermission(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Auth("audit-secret", nil))
	NewHandler(nil, auth.StaticPermissions{}).RegisterRoutes(r)

	for _, role := range []string{auth.RoleEmployee, auth.RoleManager} {
		token, err := auth.GenerateToken("audit-secret", auth.Claims{UserID: "u-1", RoleName: role}, time.Minute)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		for _, path := range []string{"/audit/events", "/audit/events/export"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("%s %s: expected 403, got %d", role, path, rec.Code)
			}
		}
	}
}

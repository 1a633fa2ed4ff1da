package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"hrdesk/internal/transport/http/api"
)

// PermissionStore answers whether a role carries a permission.
type PermissionStore interface {
	HasPermission(ctx context.Context, role, permission string) (bool, error)
}

// RequirePermission rejects anonymous callers with 401 and callers whose role lacks permission with 403.
// The denied permission is reported in the error details.
func RequirePermission(permission string, store PermissionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reqID := GetRequestID(ctx)
			user, ok := GetUser(ctx)
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
				return
			}

			switch allowed, err := store.HasPermission(ctx, user.RoleName, permission); {
			case err != nil:
				slog.Error("permission check failed", "permission", permission, "role", user.RoleName, "err", err)
				api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", reqID)
			case !allowed:
				api.FailWithDetails(w, http.StatusForbidden, "forbidden", "insufficient permissions",
					map[string]string{"permission": permission, "role": user.RoleName}, reqID)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

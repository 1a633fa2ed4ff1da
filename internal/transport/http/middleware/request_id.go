package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"hrdesk/internal/requestctx"
	"hrdesk/internal/transport/http/shared"
)

const maxRequestIDLength = 128

// RequestID propagates or assigns X-Request-ID and stores it, with the client address, on the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if reqID == "" || len(reqID) > maxRequestIDLength {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := requestctx.WithRequestID(r.Context(), reqID)
		ctx = requestctx.WithClientIP(ctx, shared.ClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

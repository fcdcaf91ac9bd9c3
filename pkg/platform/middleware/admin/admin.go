package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"healthsphere/pkg/platform/audit"
	"healthsphere/pkg/platform/privacy"
	"healthsphere/pkg/requestcontext"
)

type adminAuthorizedKey struct{}

// IsAdminRequest reports whether the request passed RequireAdminToken.
func IsAdminRequest(ctx context.Context) bool {
	ok, _ := ctx.Value(adminAuthorizedKey{}).(bool)
	return ok
}

// GetAdminActorID retrieves the admin actor identifier from the context.
// Returns empty string if not set or if this is not an admin request.
func GetAdminActorID(ctx context.Context) string {
	return requestcontext.AdminActorID(ctx)
}

// RequireAdminToken guards the admin review routes with a shared token sent in
// X-Admin-Token. An empty expected token denies every request. Failures are
// recorded as admin_auth_failed when auditor is non-nil.
func RequireAdminToken(expectedToken string, logger *slog.Logger, auditor *audit.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := r.Header.Get("X-Admin-Token")
			if expectedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"client_ip", privacy.AnonymizeIP(requestcontext.ClientIP(ctx)),
				)
				auditor.Record(ctx, audit.EventAdminAuthFailed, audit.Event{
					ActorID: r.Header.Get("X-Admin-Actor-ID"),
					Reason:  r.Method + " " + r.URL.Path,
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`)) //nolint:errcheck // headers already sent
				return
			}

			ctx = context.WithValue(ctx, adminAuthorizedKey{}, true)
			// X-Admin-Actor-ID attributes approvals and rejections in the audit trail.
			if actorID := r.Header.Get("X-Admin-Actor-ID"); actorID != "" {
				ctx = requestcontext.WithAdminActorID(ctx, actorID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

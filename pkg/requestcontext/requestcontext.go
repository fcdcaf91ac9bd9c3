// Package requestcontext carries request-scoped values (request ID, client IP,
// admin actor) through context so handlers, services and audit share one source.
package requestcontext

import "context"

type (
	requestIDKey  struct{}
	clientIPKey   struct{}
	adminActorKey struct{}
)

// WithRequestID stores the correlation ID for the current request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the correlation ID, or "" when none was set.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithClientIP stores the caller's IP address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the caller's IP address, or "" when unknown.
func ClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(clientIPKey{}).(string); ok {
		return v
	}
	return ""
}

// WithAdminActorID records which admin performed the current request.
func WithAdminActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, adminActorKey{}, actorID)
}

// AdminActorID returns the admin actor for the request, or "" for non-admin requests.
func AdminActorID(ctx context.Context) string {
	if v, ok := ctx.Value(adminActorKey{}).(string); ok {
		return v
	}
	return ""
}

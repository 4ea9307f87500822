// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. The session middleware sets identity here; services
// read it without importing net/http, and tests inject values directly.
//
// The authenticated identity is always carried per-request through context,
// never through package-level state.
package requestcontext

import (
	"context"
	"time"

	id "github.com/KoustavBera/Odoo25/pkg/domain"
)

type (
	userIDKey      struct{}
	emailKey       struct{}
	roleKey        struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Identity is the decoded session payload: who is making the request.
type Identity struct {
	UserID id.UserID
	Email  string
	Role   id.Role
}

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	ctx = context.WithValue(ctx, userIDKey{}, ident.UserID)
	ctx = context.WithValue(ctx, emailKey{}, ident.Email)
	return context.WithValue(ctx, roleKey{}, ident.Role)
}

// UserID retrieves the authenticated user ID, or the nil ID if the request is
// anonymous.
func UserID(ctx context.Context) id.UserID {
	if v, ok := ctx.Value(userIDKey{}).(id.UserID); ok {
		return v
	}
	return id.UserID{}
}

// Email retrieves the authenticated user's email, or "".
func Email(ctx context.Context) string {
	if v, ok := ctx.Value(emailKey{}).(string); ok {
		return v
	}
	return ""
}

// Role retrieves the authenticated user's role, or "" for anonymous requests.
func Role(ctx context.Context) id.Role {
	if v, ok := ctx.Value(roleKey{}).(id.Role); ok {
		return v
	}
	return ""
}

// UserAgent retrieves the raw User-Agent header captured by middleware.
func UserAgent(ctx context.Context) string {
	if v, ok := ctx.Value(userAgentKey{}).(string); ok {
		return v
	}
	return ""
}

// WithUserAgent injects the User-Agent header value into the context.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}

// RequestID retrieves the request ID assigned by middleware, or "".
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time, falling back to time.Now for
// non-HTTP contexts such as workers and tests that don't inject one.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed time into a context. Tests use this to make
// timestamp-dependent behavior deterministic.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

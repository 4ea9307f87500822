// Package requestmeta stamps each request's context with the metadata the
// rest of the stack reads through requestcontext: a request-scoped "now", the
// chi request id, and the client User-Agent. Every operation in one request
// then shares the same timestamp.
package requestmeta

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/KoustavBera/Odoo25/pkg/requestcontext"
)

// Middleware captures request metadata. Apply it after chi's RequestID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = requestcontext.WithTime(ctx, time.Now())
		ctx = requestcontext.WithUserAgent(ctx, r.Header.Get("User-Agent"))
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			ctx = requestcontext.WithRequestID(ctx, reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

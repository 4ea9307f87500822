// Package httptransport wires the HTTP surface: routing, middleware order,
// and the translation between wire shapes and domain services.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KoustavBera/Odoo25/pkg/platform/httputil"
	"github.com/KoustavBera/Odoo25/pkg/platform/middleware/requestmeta"
	"github.com/KoustavBera/Odoo25/pkg/platform/middleware/session"
	"github.com/KoustavBera/Odoo25/pkg/requestcontext"
)

// RouterConfig carries everything the router needs; the caller owns
// construction of the services and stores.
type RouterConfig struct {
	Auth         *AuthHandler
	Questions    *QuestionHandler
	Validator    TokenValidator
	Revocation   session.RevocationChecker
	Logger       *slog.Logger
	ClientOrigin string
}

// NewRouter assembles the full route tree. Reads on questions are public;
// everything that writes goes through the session middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestmeta.Middleware)
	r.Use(logRequests(cfg.Logger))
	r.Use(allowClientOrigin(cfg.ClientOrigin))

	requireSession := session.RequireSession(
		sessionValidator{cfg.Validator}, cfg.Revocation, cfg.Logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.Auth.handleSignUp)
		r.Post("/login", cfg.Auth.handleLogin)
		r.Post("/logout", cfg.Auth.handleLogout)
		r.With(requireSession).Get("/me", cfg.Auth.handleMe)
	})

	r.Route("/questions", func(r chi.Router) {
		r.Get("/", cfg.Questions.handleList)
		r.Get("/{id}", cfg.Questions.handleGet)
		r.Get("/{id}/answers", cfg.Questions.handleListAnswers)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Post("/ask", cfg.Questions.handleAsk)
			r.Delete("/{id}", cfg.Questions.handleDelete)
			r.Patch("/vote/{id}", cfg.Questions.handleVote)
			r.Post("/{id}/answer", cfg.Questions.handlePostAnswer)
			r.Post("/answers/{answerId}/vote", cfg.Questions.handleVoteAnswer)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// sessionValidator adapts the token service to the middleware's interface.
type sessionValidator struct {
	tokens TokenValidator
}

func (v sessionValidator) ValidateSession(raw string) (*session.Claims, error) {
	claims, err := v.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}
	return &session.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		JTI:    claims.ID,
	}, nil
}

func logRequests(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", requestcontext.RequestID(r.Context()),
			)
		})
	}
}

// allowClientOrigin is the minimal CORS policy the cookie flow needs: one
// configured browser origin with credentials. Wildcards cannot be used
// together with cookies, so there is nothing more to configure.
func allowClientOrigin(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin != "" && r.Header.Get("Origin") == origin {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

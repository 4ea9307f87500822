package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	authmodels "github.com/KoustavBera/Odoo25/internal/auth/models"
	"github.com/KoustavBera/Odoo25/internal/token"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
	"github.com/KoustavBera/Odoo25/pkg/platform/httputil"
	"github.com/KoustavBera/Odoo25/pkg/platform/middleware/session"
)

// AuthService is the slice of the auth domain the handlers need.
type AuthService interface {
	SignUp(ctx context.Context, req *authmodels.SignUpRequest) (*authmodels.Session, error)
	Login(ctx context.Context, req *authmodels.LoginRequest) (*authmodels.Session, error)
	Logout(ctx context.Context, claims *token.Claims) error
	CurrentUser(ctx context.Context) (*authmodels.UserView, error)
}

// TokenValidator resolves a raw session token into claims. Logout needs it
// because the logout route sits outside the session middleware: a client with
// an expired token must still be able to clear its cookie.
type TokenValidator interface {
	Validate(raw string) (*token.Claims, error)
}

// AuthHandler serves signup, login, logout, and the current-user probe.
type AuthHandler struct {
	auth      AuthService
	validator TokenValidator
	cookieTTL time.Duration
}

func NewAuthHandler(auth AuthService, validator TokenValidator, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, validator: validator, cookieTTL: cookieTTL}
}

func (h *AuthHandler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req authmodels.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	sess, err := h.auth.SignUp(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, sess.Token)
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"result": sess.User})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authmodels.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	sess, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, sess.Token)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"result": sess.User})
}

// handleLogout revokes the session if the cookie still validates and clears
// the cookie either way.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if claims, err := h.validator.Validate(cookie.Value); err == nil {
			if err := h.auth.Logout(r.Context(), claims); err != nil {
				httputil.WriteError(w, err)
				return
			}
		}
	}

	h.clearSessionCookie(w)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	view, err := h.auth.CurrentUser(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"user": view})
}

// setSessionCookie delivers the session token the way browser clients on a
// different origin need it: HTTP-only, SameSite=None, Secure.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, signed string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

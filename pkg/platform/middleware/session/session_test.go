package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KoustavBera/Odoo25/pkg/domain"
	"github.com/KoustavBera/Odoo25/pkg/requestcontext"
)

type stubValidator struct {
	claims *Claims
	err    error
}

func (s *stubValidator) ValidateSession(string) (*Claims, error) {
	return s.claims, s.err
}

type stubRevocation struct {
	revoked bool
	err     error
}

func (s *stubRevocation) IsRevoked(context.Context, string) (bool, error) {
	return s.revoked, s.err
}

func validClaims() *Claims {
	return &Claims{
		UserID: domain.NewUserID().String(),
		Email:  "a@b.com",
		Role:   "user",
		JTI:    "jti-1",
	}
}

func run(t *testing.T, validator Validator, revocation RevocationChecker, cookie string) (*httptest.ResponseRecorder, context.Context) {
	t.Helper()
	var captured context.Context
	handler := RequireSession(validator, revocation, slog.Default())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = r.Context()
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/questions/ask", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, captured
}

func TestRequireSession(t *testing.T) {
	t.Run("missing cookie is 401", func(t *testing.T) {
		rr, _ := run(t, &stubValidator{claims: validClaims()}, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token is 403", func(t *testing.T) {
		rr, _ := run(t, &stubValidator{err: errors.New("expired")}, nil, "bad")
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("revoked token is 403", func(t *testing.T) {
		rr, _ := run(t, &stubValidator{claims: validClaims()}, &stubRevocation{revoked: true}, "ok")
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("revocation check failure is 500", func(t *testing.T) {
		rr, _ := run(t, &stubValidator{claims: validClaims()},
			&stubRevocation{err: errors.New("redis down")}, "ok")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("valid session injects identity", func(t *testing.T) {
		claims := validClaims()
		rr, ctx := run(t, &stubValidator{claims: claims}, &stubRevocation{}, "ok")
		require.Equal(t, http.StatusOK, rr.Code)

		assert.Equal(t, claims.UserID, requestcontext.UserID(ctx).String())
		assert.Equal(t, "a@b.com", requestcontext.Email(ctx))
		assert.Equal(t, domain.RoleUser, requestcontext.Role(ctx))
	})

	t.Run("claims with bad user id are 403", func(t *testing.T) {
		claims := validClaims()
		claims.UserID = "not-a-uuid"
		rr, _ := run(t, &stubValidator{claims: claims}, nil, "ok")
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

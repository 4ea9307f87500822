package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KoustavBera/Odoo25/internal/audit"
	"github.com/KoustavBera/Odoo25/internal/auth/models"
	"github.com/KoustavBera/Odoo25/internal/auth/store"
	"github.com/KoustavBera/Odoo25/internal/auth/store/revocation"
	"github.com/KoustavBera/Odoo25/internal/token"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
	"github.com/KoustavBera/Odoo25/pkg/requestcontext"
)

type capturingAuditor struct {
	events []audit.Event
}

func (c *capturingAuditor) Emit(_ context.Context, event audit.Event) {
	c.events = append(c.events, event)
}

func newTestService(t *testing.T) (*Service, *store.MemoryUserStore, *capturingAuditor) {
	t.Helper()
	users := store.NewMemoryUserStore()
	auditor := &capturingAuditor{}
	tokens := token.NewService("test-key", "stackit", 4*24*time.Hour)
	svc := New(users, tokens, revocation.NewMemoryTRL(), auditor, nil, slog.Default())
	return svc, users, auditor
}

func validSignUp() *models.SignUpRequest {
	return &models.SignUpRequest{
		Name:     "Ada",
		Email:    "a@b.com",
		Password: "hunter22",
	}
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and session", func(t *testing.T) {
		svc, users, auditor := newTestService(t)

		session, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "a@b.com", session.User.Email)
		assert.Equal(t, "user", session.User.Role, "role defaults to user")

		stored, err := users.FindByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter22", stored.PasswordHash, "plaintext never stored")
		assert.NotEmpty(t, stored.PasswordHash)

		require.Len(t, auditor.events, 1)
		assert.Equal(t, audit.ActionUserSignedUp, auditor.events[0].Action)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		_, err = svc.SignUp(ctx, validSignUp())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("email is normalized before uniqueness check", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		req := validSignUp()
		req.Email = "  A@B.com "
		_, err = svc.SignUp(ctx, req)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		req := validSignUp()
		req.Email = "not-an-email"
		_, err := svc.SignUp(ctx, req)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		req := validSignUp()
		req.Role = "superuser"
		_, err := svc.SignUp(ctx, req)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("admin role is accepted", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		req := validSignUp()
		req.Role = "admin"
		session, err := svc.SignUp(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "admin", session.User.Role)
	})

	t.Run("records user agent in audit event", func(t *testing.T) {
		svc, _, auditor := newTestService(t)
		uaCtx := requestcontext.WithUserAgent(ctx,
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

		_, err := svc.SignUp(uaCtx, validSignUp())
		require.NoError(t, err)
		require.Len(t, auditor.events, 1)
		assert.Contains(t, auditor.events[0].Browser, "Chrome")
		assert.Equal(t, "Linux x86_64", auditor.events[0].OS)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	signUpThen := func(t *testing.T) *Service {
		svc, _, _ := newTestService(t)
		_, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)
		return svc
	}

	t.Run("valid credentials return session", func(t *testing.T) {
		svc := signUpThen(t)
		session, err := svc.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "hunter22"})
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "a@b.com", session.User.Email)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc := signUpThen(t)

		_, errWrongPassword := svc.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "nope"})
		_, errUnknownEmail := svc.Login(ctx, &models.LoginRequest{Email: "x@y.com", Password: "hunter22"})

		require.Error(t, errWrongPassword)
		require.Error(t, errUnknownEmail)
		assert.True(t, dErrors.HasCode(errWrongPassword, dErrors.CodeUnauthorized))
		assert.True(t, dErrors.HasCode(errUnknownEmail, dErrors.CodeUnauthorized))
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		svc := signUpThen(t)
		_, err := svc.Login(ctx, &models.LoginRequest{Email: "a@b.com"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	trl := revocation.NewMemoryTRL()
	tokens := token.NewService("test-key", "stackit", 4*24*time.Hour)
	svc := New(users, tokens, trl, &capturingAuditor{}, nil, slog.Default())

	session, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	claims, err := tokens.Validate(session.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := trl.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked, "logged-out token must be on the revocation list")
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves identity from context", func(t *testing.T) {
		svc, users, _ := newTestService(t)
		session, err := svc.SignUp(ctx, validSignUp())
		require.NoError(t, err)

		stored, err := users.FindByEmail(ctx, "a@b.com")
		require.NoError(t, err)

		authed := requestcontext.WithIdentity(ctx, requestcontext.Identity{
			UserID: stored.ID,
			Email:  stored.Email,
			Role:   stored.Role,
		})

		view, err := svc.CurrentUser(authed)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, view.ID)
	})

	t.Run("anonymous context is unauthorized", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.CurrentUser(ctx)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

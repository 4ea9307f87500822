// Package service implements signup, login, logout, and session resolution.
// Handlers stay thin; all credential rules live here.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mssola/useragent"
	"golang.org/x/crypto/bcrypt"

	"github.com/KoustavBera/Odoo25/internal/audit"
	"github.com/KoustavBera/Odoo25/internal/auth/models"
	"github.com/KoustavBera/Odoo25/internal/auth/store"
	"github.com/KoustavBera/Odoo25/internal/platform/metrics"
	"github.com/KoustavBera/Odoo25/internal/token"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
	"github.com/KoustavBera/Odoo25/pkg/platform/sentinel"
	"github.com/KoustavBera/Odoo25/pkg/requestcontext"
)

const bcryptCost = 12

// invalidCredentials is the single message for every login mismatch so the
// response never reveals whether the email or the password was wrong.
const invalidCredentials = "invalid email or password"

// RevocationList records logged-out tokens until they expire.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuditEmitter queues activity events; emission never blocks the request.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service issues and resolves sessions.
type Service struct {
	users   store.UserStore
	tokens  *token.Service
	trl     RevocationList
	auditor AuditEmitter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(
	users store.UserStore,
	tokens *token.Service,
	trl RevocationList,
	auditor AuditEmitter,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		trl:     trl,
		auditor: auditor,
		metrics: m,
		logger:  logger,
	}
}

// SignUp registers a new account and returns a live session. Duplicate
// emails yield a conflict; the password is stored only as a bcrypt hash.
func (s *Service) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.Session, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	role, err := id.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "user already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := models.User{
		ID:           id.NewUserID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		JoinedOn:     requestcontext.Now(ctx),
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Save enforces uniqueness too; a concurrent signup can lose the
			// earlier FindByEmail race and must still come back as conflict.
			return nil, dErrors.New(dErrors.CodeConflict, "user already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
	}

	if s.metrics != nil {
		s.metrics.IncrementUsersCreated()
	}
	s.emitAuthEvent(ctx, audit.ActionUserSignedUp, user.ID.String())
	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID.String())

	return s.startSession(user)
}

// Login verifies credentials and returns a live session. Any mismatch
// produces the same unauthorized error.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.Session, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, invalidCredentials)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.WarnContext(ctx, "login failed", "user_id", user.ID.String())
		return nil, dErrors.New(dErrors.CodeUnauthorized, invalidCredentials)
	}

	s.emitAuthEvent(ctx, audit.ActionUserLoggedIn, user.ID.String())
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID.String())

	return s.startSession(user)
}

// Logout puts the session token on the revocation list for its remaining
// lifetime. A missing or already-expired token is not an error.
func (s *Service) Logout(ctx context.Context, claims *token.Claims) error {
	if claims == nil {
		return nil
	}
	ttl := claims.RemainingTTL(requestcontext.Now(ctx))
	if err := s.trl.Revoke(ctx, claims.ID, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}
	s.emitAuthEvent(ctx, audit.ActionUserLoggedOut, claims.UserID)
	return nil
}

// CurrentUser resolves the authenticated identity from the request context
// into a full user projection.
func (s *Service) CurrentUser(ctx context.Context) (*models.UserView, error) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	user, err := s.users.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	view := user.View()
	return &view, nil
}

func (s *Service) startSession(user models.User) (*models.Session, error) {
	signed, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session token")
	}
	return &models.Session{User: user.View(), Token: signed}, nil
}

// emitAuthEvent records an auth action with the parsed client User-Agent.
func (s *Service) emitAuthEvent(ctx context.Context, action, userID string) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{Action: action, UserID: userID}
	if raw := requestcontext.UserAgent(ctx); raw != "" {
		ua := useragent.New(raw)
		name, version := ua.Browser()
		event.Browser = name + " " + version
		event.OS = ua.OS()
	}
	s.auditor.Emit(ctx, event)
}

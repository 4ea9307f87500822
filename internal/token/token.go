// Package token mints and validates the signed session tokens carried in the
// session cookie. The payload holds email, user id, and role, plus registered
// claims for expiry and revocation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "github.com/KoustavBera/Odoo25/pkg/domain"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
)

// Claims is the session token payload.
type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service handles session token creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// NewService builds a token service. ttl is the session lifetime; the cookie
// carrying the token uses the same value for its max age.
func NewService(signingKey string, issuer string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// TTL returns the configured session lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Generate signs a session token for the given identity.
func (s *Service) Generate(userID id.UserID, email string, role id.Role) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:  email,
		UserID: userID.String(),
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// Validate parses and verifies a session token.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeForbidden, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeForbidden, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeForbidden, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeForbidden, "invalid token claims")
	}

	return claims, nil
}

// RemainingTTL reports how long until the claims expire; used when putting a
// logged-out token on the revocation list so entries age out with the token.
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}

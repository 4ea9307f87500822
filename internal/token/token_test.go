package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "github.com/KoustavBera/Odoo25/pkg/domain"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("test-signing-key", "stackit", 4*24*time.Hour)
	userID := id.NewUserID()

	signed, err := svc.Generate(userID, "a@b.com", id.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := svc.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.ID, "jti must be set for revocation tracking")
	assert.WithinDuration(t, time.Now().Add(4*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidate_RejectsForgedToken(t *testing.T) {
	svc := NewService("real-key", "stackit", time.Hour)
	other := NewService("other-key", "stackit", time.Hour)

	signed, err := other.Generate(id.NewUserID(), "a@b.com", id.RoleUser)
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestValidate_RejectsExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key", "stackit", -time.Minute)

	signed, err := svc.Generate(id.NewUserID(), "a@b.com", id.RoleUser)
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestValidate_RejectsGarbage(t *testing.T) {
	svc := NewService("test-signing-key", "stackit", time.Hour)
	_, err := svc.Validate("not-a-token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

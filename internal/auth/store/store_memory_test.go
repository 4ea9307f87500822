package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KoustavBera/Odoo25/internal/auth/models"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
	"github.com/KoustavBera/Odoo25/pkg/platform/sentinel"
)

func newUser(email string) models.User {
	return models.User{
		ID:           id.NewUserID(),
		Name:         "Tester",
		Email:        email,
		PasswordHash: "hash",
		Role:         id.RoleUser,
		JoinedOn:     time.Now(),
	}
}

func TestMemoryUserStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()
	user := newUser("a@b.com")

	require.NoError(t, s.Save(ctx, user))

	byID, err := s.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := s.FindByEmail(ctx, "A@B.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID, "email lookup is case-insensitive")
}

func TestMemoryUserStore_DuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	require.NoError(t, s.Save(ctx, newUser("a@b.com")))

	err := s.Save(ctx, newUser("a@b.com"))
	require.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestMemoryUserStore_ResaveSameUser(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()
	user := newUser("a@b.com")

	require.NoError(t, s.Save(ctx, user))

	// Updating profile fields of the same user is not a conflict.
	user.About = "gopher"
	require.NoError(t, s.Save(ctx, user))

	got, err := s.FindByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "gopher", got.About)
}

func TestMemoryUserStore_Missing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	_, err := s.FindByID(ctx, id.NewUserID().String())
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = s.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

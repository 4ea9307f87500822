//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KoustavBera/Odoo25/internal/auth/models"
	"github.com/KoustavBera/Odoo25/internal/auth/store"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
	"github.com/KoustavBera/Odoo25/pkg/platform/sentinel"
	"github.com/KoustavBera/Odoo25/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresUserStore
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgresUserStore(s.postgres.Pool)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "users"))
}

func (s *PostgresUserStoreSuite) newUser(email string) models.User {
	return models.User{
		ID:           id.NewUserID(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$12$notarealhashnotarealhashnotarealhashnotarealha",
		Role:         id.RoleUser,
		Tags:         []string{"go"},
		JoinedOn:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresUserStoreSuite) TestSaveAndFindRoundTrip() {
	ctx := context.Background()
	user := s.newUser("round@example.com")
	s.Require().NoError(s.store.Save(ctx, user))

	byID, err := s.store.FindByID(ctx, user.ID.String())
	s.Require().NoError(err)
	s.Equal(user.Email, byID.Email)
	s.Equal(user.Role, byID.Role)
	s.Equal(user.Tags, byID.Tags)

	byEmail, err := s.store.FindByEmail(ctx, "round@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)
}

func (s *PostgresUserStoreSuite) TestFindMissingReturnsNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, id.NewUserID().String())
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindByEmail(ctx, "nobody@example.com")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresUserStoreSuite) TestDuplicateEmailConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, s.newUser("taken@example.com")))

	err := s.store.Save(ctx, s.newUser("taken@example.com"))
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresUserStoreSuite) TestResaveSameUserUpdates() {
	ctx := context.Background()
	user := s.newUser("update@example.com")
	s.Require().NoError(s.store.Save(ctx, user))

	user.About = "updated bio"
	user.Tags = []string{"go", "sql"}
	s.Require().NoError(s.store.Save(ctx, user))

	got, err := s.store.FindByID(ctx, user.ID.String())
	s.Require().NoError(err)
	s.Equal("updated bio", got.About)
	s.Equal([]string{"go", "sql"}, got.Tags)
}

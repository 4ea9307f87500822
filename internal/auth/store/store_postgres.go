package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KoustavBera/Odoo25/internal/auth/models"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
	"github.com/KoustavBera/Odoo25/pkg/platform/sentinel"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// PostgresUserStore persists users in PostgreSQL.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

// Migrate creates the users table if it does not exist.
func (s *PostgresUserStore) Migrate(ctx context.Context) error {
	const query = `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		about TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		joined_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) Save(ctx context.Context, user models.User) error {
	const query = `
	INSERT INTO users (id, name, email, password_hash, role, about, tags, joined_on)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
	    email = EXCLUDED.email,
	    password_hash = EXCLUDED.password_hash,
	    role = EXCLUDED.role,
	    about = EXCLUDED.about,
	    tags = EXCLUDED.tags;`

	_, err := s.pool.Exec(ctx, query,
		user.ID.String(),
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role.String(),
		user.About,
		user.Tags,
		user.JoinedOn,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FindByID(ctx context.Context, userID string) (models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, role, about, tags, joined_on
	FROM users WHERE id = $1;`
	return s.scanUser(s.pool.QueryRow(ctx, query, userID))
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, role, about, tags, joined_on
	FROM users WHERE email = LOWER($1);`
	return s.scanUser(s.pool.QueryRow(ctx, query, email))
}

func (s *PostgresUserStore) scanUser(row pgx.Row) (models.User, error) {
	var (
		out     models.User
		rawID   string
		rawRole string
	)
	if err := row.Scan(
		&rawID,
		&out.Name,
		&out.Email,
		&out.PasswordHash,
		&rawRole,
		&out.About,
		&out.Tags,
		&out.JoinedOn,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, sentinel.ErrNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}

	userID, err := id.ParseUserID(rawID)
	if err != nil {
		return models.User{}, fmt.Errorf("stored user id invalid: %w", err)
	}
	role, err := id.ParseRole(rawRole)
	if err != nil {
		return models.User{}, fmt.Errorf("stored role invalid: %w", err)
	}
	out.ID = userID
	out.Role = role
	return out, nil
}

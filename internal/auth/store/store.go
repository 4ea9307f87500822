// Package store persists users. Stores are interface-driven so the service
// layer can run against memory in tests and Postgres in production.
package store

import (
	"context"

	"github.com/KoustavBera/Odoo25/internal/auth/models"
)

// UserStore persists user accounts. Implementations return
// sentinel.ErrNotFound for missing users and sentinel.ErrConflict when a
// save would violate email uniqueness.
type UserStore interface {
	Save(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

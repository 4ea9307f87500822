package testutil

import (
	"net/http"

	id "github.com/KoustavBera/Odoo25/pkg/domain"
	"github.com/KoustavBera/Odoo25/pkg/requestcontext"
)

// WithIdentity attaches an authenticated identity to the request context,
// simulating what the session middleware does after validating the cookie.
// An invalid user id leaves the request untouched.
func WithIdentity(req *http.Request, userID, email string, role id.Role) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	ctx := requestcontext.WithIdentity(req.Context(), requestcontext.Identity{
		UserID: parsed,
		Email:  email,
		Role:   role,
	})
	return req.WithContext(ctx)
}

// WithUser is WithIdentity with the regular user role and a placeholder email.
func WithUser(req *http.Request, userID string) *http.Request {
	return WithIdentity(req, userID, "user@example.com", id.RoleUser)
}

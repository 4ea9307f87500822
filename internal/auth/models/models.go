// Package models defines the auth domain entities and request/response
// shapes. JSON field names keep the wire format existing clients consume.
package models

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	id "github.com/KoustavBera/Odoo25/pkg/domain"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
)

// User is a registered account. The password is stored only as a bcrypt hash;
// the plaintext never leaves the signup/login path.
type User struct {
	ID           id.UserID
	Name         string
	Email        string
	PasswordHash string
	Role         id.Role
	About        string
	Tags         []string
	JoinedOn     time.Time
}

// View projects a user into its client-facing shape, dropping the hash.
func (u User) View() UserView {
	return UserView{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role.String(),
		About:    u.About,
		Tags:     u.Tags,
		JoinedOn: u.JoinedOn,
	}
}

// UserView is the client-facing user projection.
type UserView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	About    string    `json:"about,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	JoinedOn time.Time `json:"joinedOn"`
}

// Session is the result of a successful signup or login: the user plus the
// signed token the transport layer sets as a cookie.
type Session struct {
	User  UserView
	Token string
}

// SignUpRequest is the POST /auth/signup body.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Normalize trims whitespace and lowercases the email before validation.
func (r *SignUpRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate checks field presence and shape. Role validity is checked
// separately via domain.ParseRole.
func (r *SignUpRequest) Validate() error {
	if !govalidator.StringLength(r.Name, "1", "100") {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if !govalidator.IsEmail(r.Email) || !govalidator.StringLength(r.Email, "3", "255") {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid email")
	}
	if !govalidator.StringLength(r.Password, "6", "128") {
		return dErrors.New(dErrors.CodeInvalidInput, "password must be at least 6 characters")
	}
	return nil
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims whitespace and lowercases the email.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate checks that both fields are present. Deliberately does not
// distinguish which field is malformed.
func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "email and password are required")
	}
	return nil
}

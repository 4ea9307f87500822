package domain

import dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"

// Role is the closed set of user roles. The upstream data model carried role
// as a free string in places; modeling it as a tagged type keeps unknown
// values out at the boundary.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) String() string { return string(r) }

// ParseRole validates a role string. An empty string defaults to RoleUser so
// signup can omit the field.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	case "":
		return RoleUser, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "role must be admin or user")
	}
}

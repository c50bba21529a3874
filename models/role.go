package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the tagged variant carried by every session.
type Role string

const (
	RoleResident Role = "resident"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleResident || r == RoleAdmin
}

// RequireRole is the guard each operation runs against its declared role.
func RequireRole(acting, required Role) error {
	if acting != required {
		return ErrForbidden("Access denied: %s role required", required)
	}
	return nil
}

// Actor is the verified identity behind a request.
type Actor struct {
	UserID primitive.ObjectID
	Role   Role
}

package models

import "time"

// Roles recognised by the authorization layer, in increasing privilege.
const (
	RoleCashier = "cashier"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// ValidRole reports whether r names a known role.
func ValidRole(r string) bool {
	return r == RoleCashier || r == RoleManager || r == RoleAdmin
}

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

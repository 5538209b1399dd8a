package model

import "time"

// Roles a user can hold. There is no hierarchy between them; every guarded
// route lists the roles it accepts.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// User is a row of the users table. PasswordHash never leaves the server.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    *time.Time `json:"created_at"`
}

// Credentials is the login and signup body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserUpdate is the admin edit body for an account.
type UserUpdate struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

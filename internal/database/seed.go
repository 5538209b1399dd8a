package database

import (
	"context"
	"fmt"

	"github.com/iliyamo/kitesurf-admin/internal/utils"
)

// SeedAdminUsername is the bootstrap account that always holds the admin role.
const SeedAdminUsername = "admin"

// SeedOutcome tells the caller what EnsureSeedAdmin changed.
type SeedOutcome int

const (
	SeedUnchanged SeedOutcome = iota
	SeedCreated
	SeedRoleRestored
)

// EnsureSeedAdmin guarantees the seed admin exists with role admin. A missing
// account is created with password hashed at the given bcrypt cost; an
// existing one keeps its password but is forced back to admin.
func EnsureSeedAdmin(ctx context.Context, db DB, password string, cost int) (SeedOutcome, error) {
	row, err := db.QueryOne(ctx, "SELECT id, role FROM users WHERE username = ?", SeedAdminUsername)
	if err != nil {
		return SeedUnchanged, err
	}
	if row == nil {
		hash, err := utils.HashPassword(password, cost)
		if err != nil {
			return SeedUnchanged, fmt.Errorf("hash seed admin password: %w", err)
		}
		if _, err := db.Exec(ctx,
			"INSERT INTO users (username, password, role) VALUES (?, ?, ?)",
			SeedAdminUsername, hash, "admin"); err != nil {
			return SeedUnchanged, err
		}
		return SeedCreated, nil
	}
	if row.String("role") != "admin" {
		if _, err := db.Exec(ctx, "UPDATE users SET role = ? WHERE username = ?", "admin", SeedAdminUsername); err != nil {
			return SeedUnchanged, err
		}
		return SeedRoleRestored, nil
	}
	return SeedUnchanged, nil
}

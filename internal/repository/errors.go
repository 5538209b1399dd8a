// Package repository holds the SQL for each entity. Repositories speak only
// to database.DB, so the same code runs on SQLite and Postgres.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when the addressed row does not exist. Handlers
// translate it into a 404 with an entity-specific message.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when a user insert or rename collides with
// an existing username.
var ErrUsernameExists = errors.New("username already exists")

// isUniqueViolation recognises unique-constraint failures from both drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/model"
	"github.com/iliyamo/kitesurf-admin/internal/utils"
)

type UserRepo struct{ DB database.DB }

func NewUserRepo(db database.DB) *UserRepo { return &UserRepo{DB: db} }

func scanUser(r database.Row) *model.User {
	role := r.String("role")
	if role == "" {
		role = model.RoleUser
	}
	return &model.User{
		ID:           r.Int64("id"),
		Username:     r.String("username"),
		PasswordHash: r.String("password"),
		Role:         role,
		CreatedAt:    r.Time("created_at"),
	}
}

// Create hashes password and inserts the user, returning its id.
func (r *UserRepo) Create(ctx context.Context, username, password, role string, cost int) (int64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.Exec(ctx,
		"INSERT INTO users (username, password, role) VALUES (?, ?, ?)",
		strings.TrimSpace(username), hash, role)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	return res.InsertedID, nil
}

// GetByUsername includes the password hash for credential checks.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row, err := r.DB.QueryOne(ctx, "SELECT * FROM users WHERE username = ?", username)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return scanUser(row), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := r.DB.QueryOne(ctx, "SELECT id, username, role, created_at FROM users WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return scanUser(row), nil
}

// List returns every account ordered by username, without password hashes.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.DB.QueryAll(ctx, "SELECT id, username, role, created_at FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	out := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, scanUser(row))
	}
	return out, nil
}

// Update overwrites username and role. ErrNotFound when no row matched.
func (r *UserRepo) Update(ctx context.Context, id int64, username, role string) error {
	res, err := r.DB.Exec(ctx,
		"UPDATE users SET username = ?, role = ? WHERE id = ?",
		strings.TrimSpace(username), role, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}

// CountByRole counts accounts holding role.
func (r *UserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	row, err := r.DB.QueryOne(ctx, "SELECT COUNT(*) AS count FROM users WHERE role = ?", role)
	if err != nil {
		return 0, err
	}
	return row.Int64("count"), nil
}

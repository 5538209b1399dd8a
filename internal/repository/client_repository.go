package repository

import (
	"context"

	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/model"
)

type ClientRepo struct{ DB database.DB }

func NewClientRepo(db database.DB) *ClientRepo { return &ClientRepo{DB: db} }

func scanClient(r database.Row) *model.Client {
	return &model.Client{
		ID:          r.Int64("id"),
		Name:        r.String("name"),
		Email:       r.NullString("email"),
		Phone:       r.NullString("phone"),
		Address:     r.NullString("address"),
		Nationality: r.NullString("nationality"),
		Notes:       r.NullString("notes"),
		CPF:         r.NullString("cpf"),
		BirthDate:   r.Date("birth_date"),
		CreatedAt:   r.Time("created_at"),
	}
}

func (r *ClientRepo) List(ctx context.Context) ([]*model.Client, error) {
	rows, err := r.DB.QueryAll(ctx, "SELECT * FROM clients ORDER BY name")
	if err != nil {
		return nil, err
	}
	out := make([]*model.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, scanClient(row))
	}
	return out, nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	row, err := r.DB.QueryOne(ctx, "SELECT * FROM clients WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return scanClient(row), nil
}

// Create inserts the client and returns the stored row.
func (r *ClientRepo) Create(ctx context.Context, in model.ClientInput) (*model.Client, error) {
	res, err := r.DB.Exec(ctx,
		`INSERT INTO clients (name, email, phone, address, nationality, notes, cpf, birth_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Email, in.Phone, in.Address, in.Nationality, in.Notes, in.CPF, in.BirthDate)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, res.InsertedID)
}

// Update overwrites every editable column and returns the stored row.
func (r *ClientRepo) Update(ctx context.Context, id int64, in model.ClientInput) (*model.Client, error) {
	res, err := r.DB.Exec(ctx,
		`UPDATE clients SET name = ?, email = ?, phone = ?, address = ?, nationality = ?, notes = ?, cpf = ?, birth_date = ?
WHERE id = ?`,
		in.Name, in.Email, in.Phone, in.Address, in.Nationality, in.Notes, in.CPF, in.BirthDate, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM clients WHERE id = ?", id)
	return err
}

package repository

import (
	"context"

	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/model"
)

type HotelRepo struct{ DB database.DB }

func NewHotelRepo(db database.DB) *HotelRepo { return &HotelRepo{DB: db} }

func scanHotel(r database.Row) *model.Hotel {
	return &model.Hotel{
		ID:        r.Int64("id"),
		Name:      r.String("name"),
		Location:  r.NullString("location"),
		Address:   r.NullString("address"),
		Phone:     r.NullString("phone"),
		Email:     r.NullString("email"),
		Website:   r.NullString("website"),
		Pix:       r.NullString("pix"),
		Notes:     r.NullString("notes"),
		CreatedAt: r.Time("created_at"),
	}
}

func (r *HotelRepo) List(ctx context.Context) ([]*model.Hotel, error) {
	rows, err := r.DB.QueryAll(ctx, "SELECT * FROM hotels ORDER BY name")
	if err != nil {
		return nil, err
	}
	out := make([]*model.Hotel, 0, len(rows))
	for _, row := range rows {
		out = append(out, scanHotel(row))
	}
	return out, nil
}

func (r *HotelRepo) GetByID(ctx context.Context, id int64) (*model.Hotel, error) {
	row, err := r.DB.QueryOne(ctx, "SELECT * FROM hotels WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return scanHotel(row), nil
}

func (r *HotelRepo) Create(ctx context.Context, in model.HotelInput) (*model.Hotel, error) {
	res, err := r.DB.Exec(ctx,
		`INSERT INTO hotels (name, location, address, phone, email, website, pix, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Location, in.Address, in.Phone, in.Email, in.Website, in.Pix, in.Notes)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, res.InsertedID)
}

func (r *HotelRepo) Update(ctx context.Context, id int64, in model.HotelInput) (*model.Hotel, error) {
	res, err := r.DB.Exec(ctx,
		`UPDATE hotels SET name = ?, location = ?, address = ?, phone = ?, email = ?, website = ?, pix = ?, notes = ?
WHERE id = ?`,
		in.Name, in.Location, in.Address, in.Phone, in.Email, in.Website, in.Pix, in.Notes, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *HotelRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM hotels WHERE id = ?", id)
	return err
}

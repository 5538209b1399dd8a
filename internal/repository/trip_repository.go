package repository

import (
	"context"

	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/model"
)

// tripSelect left-joins the hotel so a trip whose hotel is gone is still listed.
const tripSelect = `SELECT t.*, h.name AS hotel_name, h.location AS hotel_location
FROM trips t
LEFT JOIN hotels h ON t.hotel_id = h.id`

type TripRepo struct{ DB database.DB }

func NewTripRepo(db database.DB) *TripRepo { return &TripRepo{DB: db} }

func scanTrip(r database.Row) *model.Trip {
	return &model.Trip{
		ID:              r.Int64("id"),
		Name:            r.String("name"),
		Description:     r.NullString("description"),
		StartDate:       deref(r.Date("start_date")),
		EndDate:         deref(r.Date("end_date")),
		Price:           r.Float64("price"),
		HotelID:         r.NullInt64("hotel_id"),
		MaxParticipants: r.NullInt64("max_participants"),
		CreatedAt:       r.Time("created_at"),
		HotelName:       r.NullString("hotel_name"),
		HotelLocation:   r.NullString("hotel_location"),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *TripRepo) List(ctx context.Context) ([]*model.Trip, error) {
	rows, err := r.DB.QueryAll(ctx, tripSelect+" ORDER BY t.start_date")
	if err != nil {
		return nil, err
	}
	out := make([]*model.Trip, 0, len(rows))
	for _, row := range rows {
		out = append(out, scanTrip(row))
	}
	return out, nil
}

func (r *TripRepo) GetByID(ctx context.Context, id int64) (*model.Trip, error) {
	row, err := r.DB.QueryOne(ctx, tripSelect+" WHERE t.id = ?", id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return scanTrip(row), nil
}

func (r *TripRepo) Create(ctx context.Context, in model.TripInput) (*model.Trip, error) {
	res, err := r.DB.Exec(ctx,
		`INSERT INTO trips (name, description, start_date, end_date, price, hotel_id, max_participants)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Description, in.StartDate, in.EndDate, in.Price, in.HotelID, in.MaxParticipants)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, res.InsertedID)
}

func (r *TripRepo) Update(ctx context.Context, id int64, in model.TripInput) (*model.Trip, error) {
	res, err := r.DB.Exec(ctx,
		`UPDATE trips SET name = ?, description = ?, start_date = ?, end_date = ?, price = ?, hotel_id = ?, max_participants = ?
WHERE id = ?`,
		in.Name, in.Description, in.StartDate, in.EndDate, in.Price, in.HotelID, in.MaxParticipants, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TripRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM trips WHERE id = ?", id)
	return err
}

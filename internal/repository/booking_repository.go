package repository

import (
	"context"

	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/model"
)

// bookingSelect left-joins client and trip so bookings whose references were
// deleted still come back, with null joined fields.
const bookingSelect = `SELECT b.*,
       c.name AS client_name, c.email AS client_email,
       t.name AS trip_name, t.start_date, t.end_date, t.price
FROM bookings b
LEFT JOIN clients c ON b.client_id = c.id
LEFT JOIN trips t ON b.trip_id = t.id`

type BookingRepo struct{ DB database.DB }

func NewBookingRepo(db database.DB) *BookingRepo { return &BookingRepo{DB: db} }

func scanBooking(r database.Row) *model.Booking {
	status := r.String("status")
	if status == "" {
		status = model.StatusPending
	}
	participants := int64(1)
	if p := r.NullInt64("participants"); p != nil {
		participants = *p
	}
	return &model.Booking{
		ID:           r.Int64("id"),
		ClientID:     r.Int64("client_id"),
		TripID:       r.Int64("trip_id"),
		BookingDate:  deref(r.Date("booking_date")),
		Status:       status,
		Participants: participants,
		CreatedAt:    r.Time("created_at"),
		ClientName:   r.NullString("client_name"),
		ClientEmail:  r.NullString("client_email"),
		TripName:     r.NullString("trip_name"),
		StartDate:    r.Date("start_date"),
		EndDate:      r.Date("end_date"),
		Price:        r.NullFloat64("price"),
	}
}

func (r *BookingRepo) List(ctx context.Context) ([]*model.Booking, error) {
	rows, err := r.DB.QueryAll(ctx, bookingSelect+" ORDER BY b.booking_date DESC")
	if err != nil {
		return nil, err
	}
	out := make([]*model.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, scanBooking(row))
	}
	return out, nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	row, err := r.DB.QueryOne(ctx, bookingSelect+" WHERE b.id = ?", id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return scanBooking(row), nil
}

// Create expects in to be normalized so status and participants are set.
func (r *BookingRepo) Create(ctx context.Context, in model.BookingInput) (*model.Booking, error) {
	res, err := r.DB.Exec(ctx,
		"INSERT INTO bookings (client_id, trip_id, booking_date, status, participants) VALUES (?, ?, ?, ?, ?)",
		in.ClientID, in.TripID, in.BookingDate, in.Status, in.Participants)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, res.InsertedID)
}

func (r *BookingRepo) Update(ctx context.Context, id int64, in model.BookingInput) (*model.Booking, error) {
	res, err := r.DB.Exec(ctx,
		"UPDATE bookings SET client_id = ?, trip_id = ?, booking_date = ?, status = ?, participants = ? WHERE id = ?",
		in.ClientID, in.TripID, in.BookingDate, in.Status, in.Participants, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the booking and reports how many rows went away. A missing
// id is not an error.
func (r *BookingRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.DB.Exec(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

package model

import (
	"errors"
	"strings"
	"time"
)

// Booking statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking reserves a trip for a client. The client and trip fields come
// from LEFT JOINs and are null when the referenced row is gone.
type Booking struct {
	ID           int64      `json:"id"`
	ClientID     int64      `json:"client_id"`
	TripID       int64      `json:"trip_id"`
	BookingDate  string     `json:"booking_date"`
	Status       string     `json:"status"`
	Participants int64      `json:"participants"`
	CreatedAt    *time.Time `json:"created_at"`
	ClientName   *string    `json:"client_name"`
	ClientEmail  *string    `json:"client_email"`
	TripName     *string    `json:"trip_name"`
	StartDate    *string    `json:"start_date"`
	EndDate      *string    `json:"end_date"`
	Price        *float64   `json:"price"`
}

type BookingInput struct {
	ClientID     *int64 `json:"client_id"`
	TripID       *int64 `json:"trip_id"`
	BookingDate  string `json:"booking_date"`
	Status       string `json:"status"`
	Participants *int64 `json:"participants"`
}

// Normalize fills the defaults for status and participants.
func (in *BookingInput) Normalize() {
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Participants == nil {
		one := int64(1)
		in.Participants = &one
	}
}

// Validate expects Normalize to have run.
func (in BookingInput) Validate() error {
	if in.ClientID == nil || in.TripID == nil || strings.TrimSpace(in.BookingDate) == "" {
		return errors.New("Client, trip and booking date are required")
	}
	if _, err := time.Parse(DateLayout, in.BookingDate); err != nil {
		return errors.New("Booking date must be a date in YYYY-MM-DD format")
	}
	if !ValidStatus(in.Status) {
		return errors.New("Invalid status. Must be pending, confirmed, cancelled, or completed")
	}
	if in.Participants == nil || *in.Participants < 1 {
		return errors.New("Participants must be at least 1")
	}
	return nil
}

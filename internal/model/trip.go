package model

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for trip and booking dates.
const DateLayout = "2006-01-02"

// Trip is a scheduled package. HotelName and HotelLocation come from a
// LEFT JOIN and are null when the hotel is unset or no longer exists.
type Trip struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Price           float64    `json:"price"`
	HotelID         *int64     `json:"hotel_id"`
	MaxParticipants *int64     `json:"max_participants"`
	CreatedAt       *time.Time `json:"created_at"`
	HotelName       *string    `json:"hotel_name"`
	HotelLocation   *string    `json:"hotel_location"`
}

type TripInput struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Price           *float64 `json:"price"`
	HotelID         *int64   `json:"hotel_id"`
	MaxParticipants *int64   `json:"max_participants"`
}

// Validate checks required fields, price and that both dates are calendar
// dates in order.
func (in TripInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("Name is required")
	}
	if strings.TrimSpace(in.StartDate) == "" || strings.TrimSpace(in.EndDate) == "" {
		return errors.New("Start date and end date are required")
	}
	if in.Price == nil {
		return errors.New("Price is required")
	}
	if *in.Price < 0 {
		return errors.New("Price must be zero or greater")
	}
	start, errStart := time.Parse(DateLayout, in.StartDate)
	end, errEnd := time.Parse(DateLayout, in.EndDate)
	if errStart != nil || errEnd != nil {
		return errors.New("Start date and end date must be dates in YYYY-MM-DD format")
	}
	if start.After(end) {
		return errors.New("Start date must be on or before end date")
	}
	return nil
}

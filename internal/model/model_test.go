package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestTripInputValidate(t *testing.T) {
	ok := TripInput{Name: "Camp", StartDate: "2024-04-01", EndDate: "2024-04-08", Price: ptr(0.0)}
	assert.NoError(t, ok.Validate())

	cases := map[string]TripInput{
		"missing name":     {StartDate: "2024-04-01", EndDate: "2024-04-08", Price: ptr(1.0)},
		"missing end date": {Name: "Camp", StartDate: "2024-04-01", Price: ptr(1.0)},
		"missing price":    {Name: "Camp", StartDate: "2024-04-01", EndDate: "2024-04-08"},
		"negative price":   {Name: "Camp", StartDate: "2024-04-01", EndDate: "2024-04-08", Price: ptr(-1.0)},
		"reversed dates":   {Name: "Camp", StartDate: "2024-04-09", EndDate: "2024-04-08", Price: ptr(1.0)},
		"word dates":       {Name: "Camp", StartDate: "next summer", EndDate: "2020-01-01", Price: ptr(1.0)},
		"day first":        {Name: "Camp", StartDate: "01/04/2024", EndDate: "08/04/2024", Price: ptr(1.0)},
		"impossible day":   {Name: "Camp", StartDate: "2024-02-30", EndDate: "2024-03-01", Price: ptr(1.0)},
	}
	for name, in := range cases {
		assert.Error(t, in.Validate(), name)
	}
}

func TestBookingInputDefaults(t *testing.T) {
	in := BookingInput{ClientID: ptr(int64(1)), TripID: ptr(int64(2)), BookingDate: "2024-03-01"}
	in.Normalize()
	assert.Equal(t, StatusPending, in.Status)
	assert.Equal(t, int64(1), *in.Participants)
	assert.NoError(t, in.Validate())

	in.Status = "lost"
	assert.EqualError(t, in.Validate(), "Invalid status. Must be pending, confirmed, cancelled, or completed")

	in.Status = StatusConfirmed
	in.Participants = ptr(int64(0))
	assert.Error(t, in.Validate())

	assert.Error(t, BookingInput{TripID: ptr(int64(2)), BookingDate: "x"}.Validate())

	in.Participants = ptr(int64(2))
	in.BookingDate = "banana"
	assert.EqualError(t, in.Validate(), "Booking date must be a date in YYYY-MM-DD format")
	in.BookingDate = "2024-03-01T10:00:00Z"
	assert.Error(t, in.Validate())
}

func TestNameRequired(t *testing.T) {
	assert.Error(t, ClientInput{Name: "  "}.Validate())
	assert.NoError(t, ClientInput{Name: "Jane Doe"}.Validate())
	assert.Error(t, HotelInput{}.Validate())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleManager))
	assert.False(t, ValidRole("owner"))
}

// Package queue defines the booking change events exchanged over RabbitMQ
// and the consumer that turns them into an audit log.
package queue

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBookingQueue is the durable queue booking events are routed to.
const DefaultBookingQueue = "booking.events"

// Booking actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// BookingEvent describes one change to a booking. Deletes carry only the id.
type BookingEvent struct {
	Action       string    `json:"action"`
	BookingID    int64     `json:"booking_id"`
	ClientID     int64     `json:"client_id,omitempty"`
	ClientName   string    `json:"client_name,omitempty"`
	TripID       int64     `json:"trip_id,omitempty"`
	TripName     string    `json:"trip_name,omitempty"`
	BookingDate  string    `json:"booking_date,omitempty"`
	Status       string    `json:"status,omitempty"`
	Participants int64     `json:"participants,omitempty"`
	ActorID      int64     `json:"actor_id"`
	Actor        string    `json:"actor"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Line renders the event as one human-readable audit line.
func (e BookingEvent) Line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s booking #%d %s by %s",
		e.OccurredAt.UTC().Format(time.RFC3339), e.BookingID, e.Action, e.Actor)
	if e.Action == ActionDeleted {
		return b.String()
	}
	client := e.ClientName
	if client == "" {
		client = fmt.Sprintf("client #%d", e.ClientID)
	}
	trip := e.TripName
	if trip == "" {
		trip = fmt.Sprintf("trip #%d", e.TripID)
	}
	fmt.Fprintf(&b, " | %s on %s | date=%s status=%s participants=%d",
		client, trip, e.BookingDate, e.Status, e.Participants)
	return b.String()
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/kitesurf-admin/internal/apperr"
	"github.com/iliyamo/kitesurf-admin/internal/metrics"
	"github.com/iliyamo/kitesurf-admin/internal/middleware"
	"github.com/iliyamo/kitesurf-admin/internal/model"
	"github.com/iliyamo/kitesurf-admin/internal/queue"
	"github.com/iliyamo/kitesurf-admin/internal/repository"
	"github.com/iliyamo/kitesurf-admin/internal/service"
)

// publishTimeout bounds how long a booking write waits on the broker.
const publishTimeout = 2 * time.Second

// BookingHandler serves bookings. Every successful write is announced on
// the event publisher; broker failures are logged and never fail the request.
type BookingHandler struct {
	Bookings  *repository.BookingRepo
	Publisher service.EventPublisher
	Metrics   *metrics.Metrics
	Log       *zap.Logger
}

func NewBookingHandler(bookings *repository.BookingRepo, pub service.EventPublisher, m *metrics.Metrics, log *zap.Logger) *BookingHandler {
	if pub == nil {
		pub = service.NopPublisher{}
	}
	return &BookingHandler{Bookings: bookings, Publisher: pub, Metrics: m, Log: log}
}

func (h *BookingHandler) List(c echo.Context) error {
	out, err := h.Bookings.List(c.Request().Context())
	if err != nil {
		return apperr.From(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("Booking not found")
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err, "Booking not found")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Create(c echo.Context) error {
	in, err := bookingInput(c)
	if err != nil {
		return err
	}
	b, err := h.Bookings.Create(c.Request().Context(), in)
	if err != nil {
		return apperr.From(err)
	}
	h.announce(c, queue.ActionCreated, b.ID, b)
	return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Update(c echo.Context) error {
	in, err := bookingInput(c)
	if err != nil {
		return err
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("Booking not found")
	}
	b, err := h.Bookings.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(err, "Booking not found")
	}
	h.announce(c, queue.ActionUpdated, b.ID, b)
	return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Delete(c echo.Context) error {
	if id, ok := parseID(c); ok {
		n, err := h.Bookings.Delete(c.Request().Context(), id)
		if err != nil {
			return apperr.From(err)
		}
		if n > 0 {
			h.announce(c, queue.ActionDeleted, id, nil)
		}
	}
	return c.JSON(http.StatusOK, message("Booking deleted successfully"))
}

func bookingInput(c echo.Context) (model.BookingInput, error) {
	var in model.BookingInput
	if err := bindJSON(c, &in); err != nil {
		return in, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return in, apperr.Validation(err.Error())
	}
	return in, nil
}

func (h *BookingHandler) announce(c echo.Context, action string, id int64, b *model.Booking) {
	h.Metrics.Booking(action)

	actorID, _ := middleware.UserID(c)
	ev := queue.BookingEvent{
		Action:     action,
		BookingID:  id,
		ActorID:    actorID,
		Actor:      middleware.Username(c),
		OccurredAt: time.Now().UTC(),
	}
	if b != nil {
		ev.ClientID = b.ClientID
		ev.TripID = b.TripID
		ev.BookingDate = b.BookingDate
		ev.Status = b.Status
		ev.Participants = b.Participants
		if b.ClientName != nil {
			ev.ClientName = *b.ClientName
		}
		if b.TripName != nil {
			ev.TripName = *b.TripName
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), publishTimeout)
	defer cancel()
	err := h.Publisher.PublishBooking(ctx, ev)
	if _, nop := h.Publisher.(service.NopPublisher); !nop {
		h.Metrics.EventPublished(err == nil)
	}
	if err != nil {
		h.Log.Warn("publish booking event", zap.String("action", action), zap.Int64("booking_id", id), zap.Error(err))
	}
}

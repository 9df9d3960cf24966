package notification

import (
	"context"
	"time"
)

// Routing keys for booking domain events.
const (
	KeyBookingCreated   = "booking.created"
	KeyBookingCancelled = "booking.cancelled"
	KeyBookingsReset    = "bookings.reset"
)

// Publisher emits domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// BookingEvent describes a created or cancelled booking.
type BookingEvent struct {
	BookingID string    `json:"bookingId,omitempty"`
	UserID    int64     `json:"userId"`
	Room      string    `json:"room"`
	Date      string    `json:"date"`
	Start     string    `json:"start"`
	Minutes   int       `json:"minutes,omitempty"`
	Removed   int64     `json:"removed,omitempty"`
	At        time.Time `json:"at"`
}

// ResetEvent is published after the daily purge.
type ResetEvent struct {
	Date    string    `json:"date"`
	Removed int64     `json:"removed"`
	At      time.Time `json:"at"`
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

package models

import "time"

// DateLayout is the storage format of an operating day.
const DateLayout = "2006-01-02"

// Booking is a reservation of one room for [Start, Start+Duration) on Date.
type Booking struct {
	ID        string    `bson:"id" json:"id"`               // assigned by the store
	UserID    int64     `bson:"userId" json:"userId"`       // opaque requester identity
	Room      string    `bson:"room" json:"room"`           // room name, unique across buildings
	Date      string    `bson:"date" json:"date"`           // "2006-01-02"
	Start     HalfHour  `bson:"start" json:"start"`         // half-hours from midnight
	Duration  HalfHour  `bson:"duration" json:"duration"`   // half-hours
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"` // insertion time
}

// End is the exclusive end of the booking.
func (b Booking) End() HalfHour { return b.Start + b.Duration }

// Interval is the (start, duration) projection used for availability.
type Interval struct {
	Start    HalfHour `bson:"start" json:"start"`
	Duration HalfHour `bson:"duration" json:"duration"`
}

func (iv Interval) End() HalfHour { return iv.Start + iv.Duration }

// UserBooking is the (room, start) projection listed for cancellation.
type UserBooking struct {
	Room  string   `bson:"room" json:"room"`
	Start HalfHour `bson:"start" json:"start"`
}

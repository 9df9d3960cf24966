// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"roombook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists reservations for the operating day.
// Every method is atomic on its own; none of them spans calls.
type BookingRepository interface {
	Create(ctx context.Context, userID int64, room, date string, start, duration models.HalfHour) (string, error)
	ListByRoomAndDate(ctx context.Context, room, date string) ([]models.Interval, error)
	ListByUserAndDate(ctx context.Context, userID int64, date string) ([]models.UserBooking, error)
	DeleteByUserRoomStartDate(ctx context.Context, userID int64, room string, start models.HalfHour, date string) (int64, error)
	DeleteAllForDate(ctx context.Context, date string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoBookingRepo constructs a BookingRepository over the bookings collection.
func NewMongoBookingRepo(db *mongo.Database, timeout time.Duration) BookingRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &mongoBookingRepo{
		coll:    db.Collection("bookings"),
		timeout: timeout,
	}
}

// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"roombook/models"
)

func (r *mongoBookingRepo) Create(ctx context.Context, userID int64, room, date string, start, duration models.HalfHour) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	booking := models.Booking{
		ID:        uuid.New().String(),
		UserID:    userID,
		Room:      room,
		Date:      date,
		Start:     start,
		Duration:  duration,
		CreatedAt: time.Now(),
	}
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return "", fmt.Errorf("failed to insert booking: %w", err)
	}
	return booking.ID, nil
}

func (r *mongoBookingRepo) DeleteByUserRoomStartDate(ctx context.Context, userID int64, room string, start models.HalfHour, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"userId": userID, "room": room, "start": start, "date": date}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete booking: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoBookingRepo) DeleteAllForDate(ctx context.Context, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"date": date})
	if err != nil {
		return 0, fmt.Errorf("failed to purge bookings for %s: %w", date, err)
	}
	return res.DeletedCount, nil
}

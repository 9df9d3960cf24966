// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"

	"roombook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) ListByRoomAndDate(ctx context.Context, room, date string) ([]models.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"room": room, "date": date}
	opts := options.Find().SetProjection(bson.M{"start": 1, "duration": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var intervals []models.Interval
	if err := cursor.All(ctx, &intervals); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return intervals, nil
}

func (r *mongoBookingRepo) ListByUserAndDate(ctx context.Context, userID int64, date string) ([]models.UserBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"userId": userID, "date": date}
	opts := options.Find().
		SetProjection(bson.M{"room": 1, "start": 1}).
		SetSort(bson.D{{Key: "start", Value: 1}, {Key: "room", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.UserBooking
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding user bookings: %w", err)
	}
	if rows == nil {
		rows = []models.UserBooking{}
	}
	return rows, nil
}

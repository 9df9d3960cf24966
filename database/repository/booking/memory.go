// File: database/repository/booking/memory.go
package bookingRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"roombook/models"
)

// MemoryBookingRepo keeps bookings in process memory. A single mutex
// serializes every call.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	now      func() time.Time
}

// NewMemoryBookingRepo returns an empty in-memory repository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{
		bookings: make(map[string]models.Booking),
		now:      time.Now,
	}
}

func (r *MemoryBookingRepo) Create(ctx context.Context, userID int64, room, date string, start, duration models.HalfHour) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	r.bookings[id] = models.Booking{
		ID:        id,
		UserID:    userID,
		Room:      room,
		Date:      date,
		Start:     start,
		Duration:  duration,
		CreatedAt: r.now(),
	}
	return id, nil
}

func (r *MemoryBookingRepo) ListByRoomAndDate(ctx context.Context, room, date string) ([]models.Interval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Interval
	for _, b := range r.bookings {
		if b.Room == room && b.Date == date {
			out = append(out, models.Interval{Start: b.Start, Duration: b.Duration})
		}
	}
	return out, nil
}

func (r *MemoryBookingRepo) ListByUserAndDate(ctx context.Context, userID int64, date string) ([]models.UserBooking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.UserBooking{}
	for _, b := range r.bookings {
		if b.UserID == userID && b.Date == date {
			out = append(out, models.UserBooking{Room: b.Room, Start: b.Start})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Room < out[j].Room
	})
	return out, nil
}

func (r *MemoryBookingRepo) DeleteByUserRoomStartDate(ctx context.Context, userID int64, room string, start models.HalfHour, date string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, b := range r.bookings {
		if b.UserID == userID && b.Room == room && b.Start == start && b.Date == date {
			delete(r.bookings, id)
			n++
		}
	}
	return n, nil
}

func (r *MemoryBookingRepo) DeleteAllForDate(ctx context.Context, date string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, b := range r.bookings {
		if b.Date == date {
			delete(r.bookings, id)
			n++
		}
	}
	return n, nil
}

// EnsureIndexes is a no-op for the in-memory store.
func (r *MemoryBookingRepo) EnsureIndexes(context.Context) error { return nil }

// Len reports how many bookings are held across all days.
func (r *MemoryBookingRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

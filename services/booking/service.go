package booking

import (
	"context"
	"errors"
	"fmt"

	"roombook/models"
	"roombook/services/notification"

	"go.uber.org/zap"
)

func (e *DefaultAvailabilityEngine) Rooms(building string) ([]models.Room, error) {
	return e.Catalog.ListRooms(building)
}

func (e *DefaultAvailabilityEngine) today() string {
	return models.Today(e.Clock)
}

func (e *DefaultAvailabilityEngine) ensureRoom(room string) error {
	if !e.Catalog.HasRoom(room) {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, room)
	}
	return nil
}

func (e *DefaultAvailabilityEngine) storeError(op, room, date string, err error) error {
	e.Logger.Error("booking store failure",
		zap.String("op", op),
		zap.String("room", room),
		zap.String("date", date),
		zap.Error(err),
	)
	return &StoreError{Op: op, Room: room, Date: date, Err: err}
}

func (e *DefaultAvailabilityEngine) intervals(ctx context.Context, room, date string) ([]models.Interval, error) {
	intervals, err := e.Repo.ListByRoomAndDate(ctx, room, date)
	if err != nil {
		return nil, e.storeError("list", room, date, err)
	}
	return intervals, nil
}

func (e *DefaultAvailabilityEngine) DaySlots(ctx context.Context, room string) ([]models.SlotState, error) {
	if err := e.ensureRoom(room); err != nil {
		return nil, err
	}
	intervals, err := e.intervals(ctx, room, e.today())
	if err != nil {
		return nil, err
	}
	return DaySlots(e.Window, intervals), nil
}

func (e *DefaultAvailabilityEngine) ListFreeStarts(ctx context.Context, room string) ([]models.HalfHour, error) {
	if err := e.ensureRoom(room); err != nil {
		return nil, err
	}
	intervals, err := e.intervals(ctx, room, e.today())
	if err != nil {
		return nil, err
	}
	return FreeStarts(e.Window, intervals), nil
}

// ListDurations rejects an occupied start with SlotTakenError and a start
// that leaves no free slot with NoAvailabilityError.
func (e *DefaultAvailabilityEngine) ListDurations(ctx context.Context, room string, start models.HalfHour) ([]models.HalfHour, error) {
	if err := e.ensureRoom(room); err != nil {
		return nil, err
	}
	if !e.Window.Contains(start) {
		return nil, &NoAvailabilityError{Room: room, Start: start}
	}
	intervals, err := e.intervals(ctx, room, e.today())
	if err != nil {
		return nil, err
	}
	if !CheckStart(intervals, start) {
		return nil, &SlotTakenError{Room: room, Start: start}
	}
	durations := LegalDurations(e.Window, intervals, start)
	if len(durations) == 0 {
		return nil, &NoAvailabilityError{Room: room, Start: start}
	}
	return durations, nil
}

// Commit re-reads the room's bookings under the (room, date) lock and
// inserts only if the exact interval overlaps none of them.
func (e *DefaultAvailabilityEngine) Commit(ctx context.Context, userID int64, room string, start, duration models.HalfHour) (string, error) {
	if err := e.ensureRoom(room); err != nil {
		return "", err
	}
	if !e.Window.Fits(start, duration) {
		return "", fmt.Errorf("%w: %s for %s in %s", ErrInvalidBooking, start, models.FormatDuration(duration), room)
	}
	date := e.today()

	lockCtx := ctx
	if _, ok := ctx.Deadline(); !ok && e.LockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, e.LockTimeout)
		defer cancel()
	}
	unlock, err := e.Locker.Lock(lockCtx, room, date)
	if err != nil {
		return "", e.storeError("lock", room, date, err)
	}
	defer unlock()

	intervals, err := e.intervals(ctx, room, date)
	if err != nil {
		return "", err
	}
	if Overlaps(intervals, start, duration) {
		e.Logger.Info("commit rejected, interval taken",
			zap.String("room", room),
			zap.String("start", start.String()),
			zap.Int("minutes", duration.Minutes()),
		)
		return "", &SlotTakenError{Room: room, Start: start}
	}

	id, err := e.Repo.Create(ctx, userID, room, date, start, duration)
	if err != nil {
		return "", e.storeError("create", room, date, err)
	}
	e.Logger.Info("booking created",
		zap.String("id", id),
		zap.Int64("userId", userID),
		zap.String("room", room),
		zap.String("start", start.String()),
		zap.Int("minutes", duration.Minutes()),
	)
	e.publish(ctx, notification.KeyBookingCreated, notification.BookingEvent{
		BookingID: id,
		UserID:    userID,
		Room:      room,
		Date:      date,
		Start:     start.String(),
		Minutes:   duration.Minutes(),
		At:        e.Clock.Now(),
	})
	return id, nil
}

func (e *DefaultAvailabilityEngine) ListUserBookings(ctx context.Context, userID int64) ([]models.UserBooking, error) {
	date := e.today()
	bookings, err := e.Repo.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, e.storeError("list_user", "", date, err)
	}
	return bookings, nil
}

// Cancel deletes the exact (user, room, start, today) tuple. Zero matches is not an error.
func (e *DefaultAvailabilityEngine) Cancel(ctx context.Context, userID int64, room string, start models.HalfHour) (int64, error) {
	date := e.today()
	n, err := e.Repo.DeleteByUserRoomStartDate(ctx, userID, room, start, date)
	if err != nil {
		return 0, e.storeError("delete", room, date, err)
	}
	if n > 0 {
		e.publish(ctx, notification.KeyBookingCancelled, notification.BookingEvent{
			UserID:  userID,
			Room:    room,
			Date:    date,
			Start:   start.String(),
			Removed: n,
			At:      e.Clock.Now(),
		})
	}
	return n, nil
}

// Reset purges every booking of the current operating day.
func (e *DefaultAvailabilityEngine) Reset(ctx context.Context) (int64, error) {
	return e.purge(ctx, e.today())
}

// ResetClosingDay purges the day a scheduled midnight firing is ending.
func (e *DefaultAvailabilityEngine) ResetClosingDay(ctx context.Context) (int64, error) {
	return e.purge(ctx, models.ClosingDay(e.Clock))
}

func (e *DefaultAvailabilityEngine) purge(ctx context.Context, date string) (int64, error) {
	n, err := e.Repo.DeleteAllForDate(ctx, date)
	if err != nil {
		return 0, e.storeError("purge", "", date, err)
	}
	e.Logger.Info("daily bookings purged", zap.String("date", date), zap.Int64("removed", n))
	e.publish(ctx, notification.KeyBookingsReset, notification.ResetEvent{
		Date:    date,
		Removed: n,
		At:      e.Clock.Now(),
	})
	return n, nil
}

func (e *DefaultAvailabilityEngine) publish(ctx context.Context, key string, payload any) {
	if e.Publisher == nil {
		return
	}
	if err := e.Publisher.Publish(ctx, key, payload); err != nil && !errors.Is(err, context.Canceled) {
		e.Logger.Warn("failed to publish event", zap.String("key", key), zap.Error(err))
	}
}

package booking

import (
	"context"
	"time"

	bookingRepo "roombook/database/repository/booking"
	lockRepo "roombook/database/repository/lock"
	"roombook/models"
	"roombook/services/catalog"
	"roombook/services/notification"

	"go.uber.org/zap"
)

// AvailabilityEngine computes free slots and legal durations from stored
// bookings and guards every write with a full overlap re-check.
type AvailabilityEngine interface {
	Rooms(building string) ([]models.Room, error)
	DaySlots(ctx context.Context, room string) ([]models.SlotState, error)
	ListFreeStarts(ctx context.Context, room string) ([]models.HalfHour, error)
	ListDurations(ctx context.Context, room string, start models.HalfHour) ([]models.HalfHour, error)
	Commit(ctx context.Context, userID int64, room string, start, duration models.HalfHour) (string, error)
	ListUserBookings(ctx context.Context, userID int64) ([]models.UserBooking, error)
	Cancel(ctx context.Context, userID int64, room string, start models.HalfHour) (int64, error)
	Reset(ctx context.Context) (int64, error)
	ResetClosingDay(ctx context.Context) (int64, error)
}

// DefaultAvailabilityEngine re-reads the store on every call; nothing is cached.
type DefaultAvailabilityEngine struct {
	Repo      bookingRepo.BookingRepository
	Catalog   *catalog.Catalog
	Locker    lockRepo.RoomLocker
	Publisher notification.Publisher
	Clock     models.Clock
	Window    models.Window
	Logger    *zap.Logger

	// LockTimeout bounds lock acquisition when ctx has no deadline.
	LockTimeout time.Duration
}

// NewDefaultAvailabilityEngine fills optional collaborators with defaults.
func NewDefaultAvailabilityEngine(
	repo bookingRepo.BookingRepository,
	cat *catalog.Catalog,
	locker lockRepo.RoomLocker,
	pub notification.Publisher,
	window models.Window,
	logger *zap.Logger,
) *DefaultAvailabilityEngine {
	if locker == nil {
		locker = lockRepo.NewLocalLocker()
	}
	if pub == nil {
		pub = notification.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAvailabilityEngine{
		Repo:        repo,
		Catalog:     cat,
		Locker:      locker,
		Publisher:   pub,
		Clock:       models.RealClock{},
		Window:      window,
		Logger:      logger,
		LockTimeout: 5 * time.Second,
	}
}

package booking

import (
	"errors"
	"fmt"

	"roombook/models"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrInvalidBooking = errors.New("invalid booking")
)

// SlotTakenError means the chosen start or interval collides with an existing booking.
type SlotTakenError struct {
	Room  string
	Start models.HalfHour
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("slotTaken: %s at %s is already booked", e.Room, e.Start)
}

// NoAvailabilityError means no duration of at least one slot fits after Start.
type NoAvailabilityError struct {
	Room  string
	Start models.HalfHour
}

func (e *NoAvailabilityError) Error() string {
	return fmt.Sprintf("noAvailability: nothing can be booked in %s from %s", e.Room, e.Start)
}

// StoreError wraps a persistence or lock failure.
type StoreError struct {
	Op   string
	Room string
	Date string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Room == "" {
		return fmt.Sprintf("store %s %s: %v", e.Op, e.Date, e.Err)
	}
	return fmt.Sprintf("store %s %s/%s: %v", e.Op, e.Room, e.Date, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsSlotTaken reports whether err carries a SlotTakenError.
func IsSlotTaken(err error) bool {
	var target *SlotTakenError
	return errors.As(err, &target)
}

// IsNoAvailability reports whether err carries a NoAvailabilityError.
func IsNoAvailability(err error) bool {
	var target *NoAvailabilityError
	return errors.As(err, &target)
}

// IsStoreError reports whether err carries a StoreError.
func IsStoreError(err error) bool {
	var target *StoreError
	return errors.As(err, &target)
}

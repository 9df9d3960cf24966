package models

import "time"

// Clock abstracts time.Now so the operating day can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Today returns the operating day for clock in DateLayout.
func Today(clock Clock) string {
	return clock.Now().Format(DateLayout)
}

// ClosingDay returns the operating day that a firing at or just after
// midnight is ending. The minute of slack never reaches an earlier day.
func ClosingDay(clock Clock) string {
	return clock.Now().Add(-time.Minute).Format(DateLayout)
}

// ResetPayload is carried by the queued daily reset task. The day to
// purge is resolved when the task runs, not when it is enqueued.
type ResetPayload struct {
	Source string `json:"source"` // "schedule" or "admin"
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// HalfHour counts half-hour units from local midnight (08:30 is 17, 19:00 is 38).
// Durations use the same unit, so a 1.5 hour booking has Duration 3.
type HalfHour int

const (
	SlotMinutes     = 30
	HalfHoursPerDay = 24 * 60 / SlotMinutes
)

// ParseClock parses "HH:MM" aligned to a half hour. "24:00" is accepted as the end of day.
func ParseClock(s string) (HalfHour, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return HalfHoursPerDay, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return FromMinutes(t.Hour()*60 + t.Minute())
}

// FromMinutes converts minutes to half-hour units, rejecting unaligned values.
func FromMinutes(minutes int) (HalfHour, error) {
	if minutes < 0 || minutes%SlotMinutes != 0 {
		return 0, fmt.Errorf("%d minutes is not aligned to %d minutes", minutes, SlotMinutes)
	}
	return HalfHour(minutes / SlotMinutes), nil
}

// Minutes returns the value in minutes.
func (h HalfHour) Minutes() int { return int(h) * SlotMinutes }

// Hours returns the value as fractional hours. Display only.
func (h HalfHour) Hours() float64 { return float64(h) / 2 }

// String renders a time of day as "HH:MM".
func (h HalfHour) String() string {
	return fmt.Sprintf("%02d:%02d", int(h)/2, (int(h)%2)*SlotMinutes)
}

// FormatDuration renders a span as "30 min", "2 h" or "1 h 30 min".
func FormatDuration(d HalfHour) string {
	hours := int(d) / 2
	minutes := (int(d) % 2) * SlotMinutes
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d h %d min", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d h", hours)
	default:
		return fmt.Sprintf("%d min", minutes)
	}
}

// Window is the bookable part of the operating day.
type Window struct {
	Start       HalfHour `json:"start"`
	End         HalfHour `json:"end"`
	MaxDuration HalfHour `json:"maxDuration"`
}

// DefaultWindow is 08:30 to 19:00 with bookings of at most 8 hours.
func DefaultWindow() Window {
	return Window{Start: 17, End: 38, MaxDuration: 16}
}

// Validate checks the window is non-empty and inside one day.
func (w Window) Validate() error {
	if w.Start < 0 || w.End > HalfHoursPerDay || w.Start >= w.End {
		return fmt.Errorf("invalid booking window %s-%s", w.Start, w.End)
	}
	if w.MaxDuration < 1 {
		return fmt.Errorf("max booking duration must be at least %d minutes", SlotMinutes)
	}
	return nil
}

// Contains reports whether t is a slot origin inside [Start, End).
func (w Window) Contains(t HalfHour) bool {
	return t >= w.Start && t < w.End
}

// Fits reports whether [start, start+duration) is a legal booking shape.
func (w Window) Fits(start, duration HalfHour) bool {
	return w.Contains(start) && duration >= 1 && duration <= w.MaxDuration && start+duration <= w.End
}

// Slots enumerates every slot origin in [Start, End).
func (w Window) Slots() []HalfHour {
	if w.End <= w.Start {
		return nil
	}
	out := make([]HalfHour, 0, int(w.End-w.Start))
	for t := w.Start; t < w.End; t++ {
		out = append(out, t)
	}
	return out
}

// SlotState is one row of the presentable slot grid for a room.
type SlotState struct {
	Start HalfHour `json:"start"`
	Taken bool     `json:"taken"`
}

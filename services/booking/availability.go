package booking

import (
	"sort"

	"roombook/models"
)

// OccupiedSlots marks every slot origin covered by an interval.
func OccupiedSlots(intervals []models.Interval) map[models.HalfHour]bool {
	occupied := make(map[models.HalfHour]bool)
	for _, iv := range intervals {
		for t := iv.Start; t < iv.End(); t++ {
			occupied[t] = true
		}
	}
	return occupied
}

// DaySlots lists the whole window with taken flags.
func DaySlots(w models.Window, intervals []models.Interval) []models.SlotState {
	occupied := OccupiedSlots(intervals)
	slots := w.Slots()
	out := make([]models.SlotState, 0, len(slots))
	for _, t := range slots {
		out = append(out, models.SlotState{Start: t, Taken: occupied[t]})
	}
	return out
}

// FreeStarts returns every slot origin in the window that no interval covers.
func FreeStarts(w models.Window, intervals []models.Interval) []models.HalfHour {
	occupied := OccupiedSlots(intervals)
	var out []models.HalfHour
	for _, t := range w.Slots() {
		if !occupied[t] {
			out = append(out, t)
		}
	}
	return out
}

// CheckStart reports whether start lies outside every [s, s+d).
func CheckStart(intervals []models.Interval, start models.HalfHour) bool {
	for _, iv := range intervals {
		if iv.Start <= start && start < iv.End() {
			return false
		}
	}
	return true
}

// LegalDurations enumerates durations from one slot up to the next booking,
// the end of the day or the duration cap, whichever comes first.
func LegalDurations(w models.Window, intervals []models.Interval, start models.HalfHour) []models.HalfHour {
	sorted := append([]models.Interval(nil), intervals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	ceiling := w.End
	for _, iv := range sorted {
		if iv.Start >= start {
			if iv.Start < ceiling {
				ceiling = iv.Start
			}
			break
		}
	}

	maxAvailable := ceiling - start
	var out []models.HalfHour
	for d := models.HalfHour(1); d <= w.MaxDuration && d <= maxAvailable; d++ {
		out = append(out, d)
	}
	return out
}

// Overlaps reports whether [start, start+duration) intersects any interval.
// Touching endpoints do not overlap.
func Overlaps(intervals []models.Interval, start, duration models.HalfHour) bool {
	end := start + duration
	for _, iv := range intervals {
		if iv.Start < end && start < iv.End() {
			return true
		}
	}
	return false
}

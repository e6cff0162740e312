// Package slots narrows and classifies availability slots. Nothing here performs I/O.
package slots

import (
	"facilitybooking/internal/entities"
	"fmt"
	"sort"
	"time"
)

// Filter returns the slots usable for a request of at least minDurationMinutes with the given
// number of participants. The minimum may be fractional. Slots are never modified, only dropped.
func Filter(in []entities.TimeSlot, minDurationMinutes float64, participants int) ([]entities.TimeSlot, error) {
	if !(minDurationMinutes > 0) {
		return nil, fmt.Errorf("slot filter: %w: got %g", entities.ErrInvalidDuration, minDurationMinutes)
	}
	if participants <= 0 {
		return nil, fmt.Errorf("slot filter: %w: got %d", entities.ErrInvalidParticipants, participants)
	}

	out := make([]entities.TimeSlot, 0, len(in))
	for _, s := range in {
		if usable(s, minDurationMinutes, participants) {
			out = append(out, s)
		}
	}
	return out, nil
}

func usable(s entities.TimeSlot, minDuration float64, participants int) bool {
	return s.IsAvailable &&
		!s.IsBlocked &&
		s.AvailableSpots >= participants &&
		s.DurationMinutes() >= minDuration
}

// SortByStart returns a copy ordered by start time ascending.
func SortByStart(in []entities.TimeSlot) []entities.TimeSlot {
	out := make([]entities.TimeSlot, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// CandidateEnd is the end of the range actually requested, which can be shorter than the slot.
func CandidateEnd(s entities.TimeSlot, durationMinutes int) time.Time {
	return s.StartTime.Add(time.Duration(durationMinutes) * time.Minute)
}

// Flatten joins the per-day slot lists of an availability response.
func Flatten(days []entities.DayAvailability) []entities.TimeSlot {
	var n int
	for _, d := range days {
		n += len(d.Slots)
	}
	out := make([]entities.TimeSlot, 0, n)
	for _, d := range days {
		out = append(out, d.Slots...)
	}
	return out
}

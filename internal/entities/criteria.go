package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDuration     = errors.New("duration must be a positive number of minutes")
	ErrInvalidParticipants = errors.New("participant count must be a positive integer")
)

// SearchCriteria is the per-dialog state of a booking selection.
type SearchCriteria struct {
	FacilityID      string    `json:"facility_id"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Participants    int       `json:"participants"`
}

// ValidateRequirements checks duration and participants. A capacity of zero means unknown.
func ValidateRequirements(durationMinutes, participants, capacity int) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}
	if participants <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidParticipants, participants)
	}
	if capacity > 0 && participants > capacity {
		return fmt.Errorf("%w: %d exceeds facility capacity %d", ErrInvalidParticipants, participants, capacity)
	}
	return nil
}

package entities

import (
	"fmt"
	"time"
)

// TimeSlot is a bookable interval at one facility as served by the availability endpoint.
type TimeSlot struct {
	ID             string    `json:"id"`
	FacilityID     string    `json:"facilityId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Capacity       int       `json:"capacity"`
	AvailableSpots int       `json:"availableSpots"`
	Price          float64   `json:"price"`
	IsAvailable    bool      `json:"isAvailable"`
	IsBlocked      bool      `json:"isBlocked"`
	BlockReason    string    `json:"blockReason,omitempty"`
}

// DurationMinutes returns the exact slot length in minutes, fractional part included.
func (s TimeSlot) DurationMinutes() float64 {
	return float64(s.EndTime.Sub(s.StartTime)) / float64(time.Minute)
}

// Validate checks a slot received from the backend for internal consistency.
func (s TimeSlot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("time slot: missing id")
	}
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return fmt.Errorf("time slot %s: missing start or end time", s.ID)
	}
	if !s.EndTime.After(s.StartTime) {
		return fmt.Errorf("time slot %s: end time must be after start time", s.ID)
	}
	if s.Capacity < 0 {
		return fmt.Errorf("time slot %s: negative capacity %d", s.ID, s.Capacity)
	}
	if s.AvailableSpots < 0 || s.AvailableSpots > s.Capacity {
		return fmt.Errorf("time slot %s: available spots %d outside [0, %d]", s.ID, s.AvailableSpots, s.Capacity)
	}
	if s.Price < 0 {
		return fmt.Errorf("time slot %s: negative price", s.ID)
	}
	if s.BlockReason != "" && !s.IsBlocked {
		return fmt.Errorf("time slot %s: block reason set on an unblocked slot", s.ID)
	}
	return nil
}

// DayAvailability groups the slots of a single day.
type DayAvailability struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

// AvailabilityCheck is a candidate range sent to the conflict checker.
type AvailabilityCheck struct {
	FacilityID       string
	StartTime        time.Time
	EndTime          time.Time
	ExcludeBookingID string
}

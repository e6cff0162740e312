package slots

import "facilitybooking/internal/entities"

type Status string

const (
	StatusBlocked     Status = "blocked"
	StatusUnavailable Status = "unavailable"
	StatusFull        Status = "full"
	StatusLimited     Status = "limited"
	StatusAvailable   Status = "available"
)

// limitedPercent is the share of capacity under which a slot is shown as limited.
const limitedPercent = 30

// Classify derives the display status of a slot. Order matters: blocked beats everything.
func Classify(s entities.TimeSlot) Status {
	switch {
	case s.IsBlocked:
		return StatusBlocked
	case !s.IsAvailable:
		return StatusUnavailable
	case s.AvailableSpots == 0:
		return StatusFull
	case s.AvailableSpots*100 < s.Capacity*limitedPercent:
		return StatusLimited
	default:
		return StatusAvailable
	}
}

// Utilization is the booked share of capacity as a percentage in [0, 100].
func Utilization(s entities.TimeSlot) float64 {
	if s.Capacity <= 0 {
		return 0
	}
	u := float64(s.Capacity-s.AvailableSpots) / float64(s.Capacity) * 100
	if u < 0 {
		return 0
	}
	if u > 100 {
		return 100
	}
	return u
}

type SlotView struct {
	entities.TimeSlot
	Status      Status  `json:"status"`
	Utilization float64 `json:"utilization"`
}

func Describe(in []entities.TimeSlot) []SlotView {
	out := make([]SlotView, 0, len(in))
	for _, s := range in {
		out = append(out, SlotView{TimeSlot: s, Status: Classify(s), Utilization: Utilization(s)})
	}
	return out
}

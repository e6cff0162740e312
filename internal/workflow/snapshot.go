package workflow

import (
	"facilitybooking/internal/entities"
	"facilitybooking/internal/slots"
	"time"
)

// Snapshot is a copy of a selection's state, safe to keep after the selection moves on.
type Snapshot struct {
	State          State                       `json:"state"`
	Criteria       entities.SearchCriteria     `json:"criteria"`
	Facility       *entities.Facility          `json:"facility,omitempty"`
	Slots          []slots.SlotView            `json:"slots"`
	Selected       *entities.TimeSlot          `json:"selected,omitempty"`
	CandidateStart *time.Time                  `json:"candidate_start,omitempty"`
	CandidateEnd   *time.Time                  `json:"candidate_end,omitempty"`
	Validation     *entities.BookingValidation `json:"validation,omitempty"`
	Accepted       *entities.TimeSlot          `json:"accepted,omitempty"`
	Error          string                      `json:"error,omitempty"`
}

func (s *Selection) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Selection) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:    s.state,
		Criteria: s.criteria,
		Slots:    slots.Describe(s.visible),
		Error:    s.lastErr,
	}
	if s.facility != nil {
		f := *s.facility
		snap.Facility = &f
	}
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
		start, end := s.candStart, s.candEnd
		snap.CandidateStart = &start
		snap.CandidateEnd = &end
	}
	if s.validation != nil {
		v := *s.validation
		snap.Validation = &v
	}
	if s.accepted != nil {
		a := *s.accepted
		snap.Accepted = &a
	}
	return snap
}

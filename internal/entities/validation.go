package entities

import "fmt"

type ConflictType string

const (
	ConflictOverlap             ConflictType = "overlap"
	ConflictCapacity            ConflictType = "capacity"
	ConflictFacilityUnavailable ConflictType = "facility_unavailable"
	ConflictOutsideHours        ConflictType = "outside_hours"
	// ConflictOther stands in for any type the checker reports that is not listed above.
	ConflictOther ConflictType = "other"
)

func (t ConflictType) Valid() bool {
	switch t {
	case ConflictOverlap, ConflictCapacity, ConflictFacilityUnavailable, ConflictOutsideHours, ConflictOther:
		return true
	}
	return false
}

type Conflict struct {
	BookingID string       `json:"bookingId,omitempty"`
	Type      ConflictType `json:"type"`
	Message   string       `json:"message"`
}

// BookingValidation is the conflict checker's verdict for one candidate range.
// A valid result never carries conflicts; it may still carry warnings.
type BookingValidation struct {
	IsValid     bool       `json:"isValid"`
	Conflicts   []Conflict `json:"conflicts"`
	Warnings    []string   `json:"warnings"`
	Suggestions []string   `json:"suggestions"`
}

// Normalize replaces nil lists with empty ones so callers can range and encode them uniformly.
// Conflicts of an unrecognised type become ConflictOther; the original type is kept in the message.
func (v *BookingValidation) Normalize() {
	if v.Conflicts == nil {
		v.Conflicts = []Conflict{}
	}
	for i, c := range v.Conflicts {
		if c.Type.Valid() {
			continue
		}
		msg := string(c.Type)
		if c.Message != "" {
			msg += ": " + c.Message
		}
		v.Conflicts[i].Type = ConflictOther
		v.Conflicts[i].Message = msg
	}
	if v.Warnings == nil {
		v.Warnings = []string{}
	}
	if v.Suggestions == nil {
		v.Suggestions = []string{}
	}
}

func (v BookingValidation) Validate() error {
	if v.IsValid && len(v.Conflicts) > 0 {
		return fmt.Errorf("booking validation: valid result carries %d conflicts", len(v.Conflicts))
	}
	return nil
}

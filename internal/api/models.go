package api

import (
	"facilitybooking/internal/entities"
	"facilitybooking/internal/workflow"
)

// Selection sessions
type CreateSelectionRequest struct {
	DurationMinutes int `json:"duration_minutes"`
	Participants    int `json:"participants"`
}

type SelectionResponse struct {
	ID string `json:"id"`
	workflow.Snapshot
}

// CriteriaRequest picks the facility and date; date is YYYY-MM-DD or RFC 3339.
type CriteriaRequest struct {
	FacilityID string `json:"facility_id"`
	Date       string `json:"date"`
}

type RequirementsRequest struct {
	DurationMinutes int `json:"duration_minutes"`
	Participants    int `json:"participants"`
}

// Checkouts
type CheckoutLookupRequest struct {
	Email string `json:"email"`
}

// Admin
type BookingUpdateResponse struct {
	Booking    *entities.Booking           `json:"booking,omitempty"`
	Validation *entities.BookingValidation `json:"validation,omitempty"`
	Updated    bool                        `json:"updated"`
}

type CheckoutsListResponse struct {
	Total     int64                       `json:"total"`
	Checkouts []entities.CheckoutResponse `json:"checkouts"`
}

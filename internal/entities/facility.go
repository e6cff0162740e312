package entities

import "time"

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OperatingHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
}

// Facility is read from the facility directory; the selection workflow never modifies it.
type Facility struct {
	ID             string                    `json:"id"`
	Name           string                    `json:"name"`
	Description    string                    `json:"description,omitempty"`
	Capacity       int                       `json:"capacity"`
	PricePerHour   float64                   `json:"pricePerHour"`
	Location       Location                  `json:"location"`
	OperatingHours map[string]OperatingHours `json:"operatingHours,omitempty"`
	Amenities      []string                  `json:"amenities,omitempty"`
	Images         []string                  `json:"images,omitempty"`
	IsActive       bool                      `json:"isActive"`
	CreatedAt      time.Time                 `json:"createdAt,omitempty"`
	UpdatedAt      time.Time                 `json:"updatedAt,omitempty"`
}

// FacilityRequest is the body of facility create and update calls.
type FacilityRequest struct {
	Name           string                    `json:"name"`
	Description    string                    `json:"description,omitempty"`
	Capacity       int                       `json:"capacity"`
	PricePerHour   float64                   `json:"pricePerHour"`
	Location       Location                  `json:"location"`
	OperatingHours map[string]OperatingHours `json:"operatingHours,omitempty"`
	Amenities      []string                  `json:"amenities,omitempty"`
	Images         []string                  `json:"images,omitempty"`
	IsActive       *bool                     `json:"isActive,omitempty"`
}

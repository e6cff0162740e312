package entities

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

type Booking struct {
	ID           string    `json:"id"`
	FacilityID   string    `json:"facilityId"`
	UserID       string    `json:"userId,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Participants int       `json:"participants"`
	Status       string    `json:"status"`
	TotalPrice   float64   `json:"totalPrice"`
	Notes        string    `json:"notes,omitempty"`
	ContactName  string    `json:"contactName,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

type CreateBookingRequest struct {
	FacilityID   string    `json:"facilityId"`
	UserID       string    `json:"userId,omitempty"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Participants int       `json:"participants"`
	Status       string    `json:"status,omitempty"`
	TotalPrice   float64   `json:"totalPrice"`
	Notes        string    `json:"notes,omitempty"`
	ContactName  string    `json:"contactName,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
}

// UpdateBookingRequest is a PATCH body; nil fields are left untouched.
type UpdateBookingRequest struct {
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Participants *int       `json:"participants,omitempty"`
	Status       *string    `json:"status,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

type BookingFilter struct {
	FacilityID string
	Status     string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// Contact is the customer data collected when an accepted slot goes to checkout.
type Contact struct {
	UserID        string `json:"user_id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Language      string `json:"language"`
	PaymentMethod int    `json:"payment_method_id"`
	Notes         string `json:"notes,omitempty"`
}

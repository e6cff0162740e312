package db

import "time"

// Checkout links a booking created in the backend to its payment and customer contact.
type Checkout struct {
	ID                    int
	Code                  string
	BookingID             string
	FacilityID            string
	FacilityName          string
	SlotID                string
	UserName              string
	UserEmail             string
	UserPhone             string
	Participants          int
	PaymentMethodID       int
	Status                string
	StartTime             time.Time
	EndTime               time.Time
	TotalPrice            float64
	Language              string
	StripeSessionID       string
	StripePaymentIntentID string
	PaymentStatus         string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

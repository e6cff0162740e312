package entities

type BookingsList struct {
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
	Bookings []Booking `json:"bookings"`
}

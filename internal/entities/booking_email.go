package entities

type BookingEmailData struct {
	UserName           string
	CheckoutCode       string
	FacilityName       string
	Participants       int
	StartTimeFormatted string
	EndTimeFormatted   string
	CurrentYear        int
	Language           string
	Status             string
}

package utils

import (
	"fmt"
	"math"
	"time"
)

const (
	PaymentOnsite = 1
	PaymentOnline = 2
)

// onsiteDeposit is the share charged up front when the rest is paid at the facility.
const onsiteDeposit = 0.3

// BookingPrice prices a range at an hourly rate, rounded to cents.
func BookingPrice(hourlyRate float64, start, end time.Time) (float64, error) {
	if !end.After(start) {
		return 0, fmt.Errorf("end_time must be after start_time")
	}
	if hourlyRate < 0 {
		return 0, fmt.Errorf("hourly rate must not be negative")
	}
	hours := end.Sub(start).Hours()
	return math.Round(hourlyRate*hours*100) / 100, nil
}

// ChargeAmount returns the amount in cents charged now for the given payment method.
func ChargeAmount(total float64, paymentMethod int) (int64, error) {
	switch paymentMethod {
	case PaymentOnline:
		return int64(math.Round(total * 100)), nil
	case PaymentOnsite:
		return int64(math.Round(total * onsiteDeposit * 100)), nil
	default:
		return 0, fmt.Errorf("unsupported payment method %d", paymentMethod)
	}
}

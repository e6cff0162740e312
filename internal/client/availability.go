package client

import (
	"context"
	"facilitybooking/internal/entities"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GetAvailability fetches the per-day slots of a facility between start and end.
func (c *BookingAPI) GetAvailability(ctx context.Context, facilityID string, start, end time.Time) ([]entities.DayAvailability, error) {
	if facilityID == "" {
		return nil, fmt.Errorf("get availability: facility id is required")
	}
	q := url.Values{}
	q.Set("startDate", formatTime(start))
	q.Set("endDate", formatTime(end))

	var days []entities.DayAvailability
	path := "/api/facilities/" + url.PathEscape(facilityID) + "/availability"
	if err := c.do(ctx, http.MethodGet, path, q, nil, &days); err != nil {
		return nil, err
	}

	for i := range days {
		for j := range days[i].Slots {
			s := &days[i].Slots[j]
			if s.FacilityID == "" {
				s.FacilityID = facilityID
			}
			if s.FacilityID != facilityID {
				return nil, fmt.Errorf("availability for %s: slot %s belongs to facility %s", facilityID, s.ID, s.FacilityID)
			}
			if err := s.Validate(); err != nil {
				return nil, fmt.Errorf("availability for %s on %s: %w", facilityID, days[i].Date, err)
			}
		}
	}
	return days, nil
}

// CheckAvailability asks the backend whether the candidate range can be booked.
func (c *BookingAPI) CheckAvailability(ctx context.Context, check entities.AvailabilityCheck) (*entities.BookingValidation, error) {
	if check.FacilityID == "" {
		return nil, fmt.Errorf("check availability: facility id is required")
	}
	if !check.EndTime.After(check.StartTime) {
		return nil, fmt.Errorf("check availability: end time must be after start time")
	}
	q := url.Values{}
	q.Set("facilityId", check.FacilityID)
	q.Set("startTime", formatTime(check.StartTime))
	q.Set("endTime", formatTime(check.EndTime))
	if check.ExcludeBookingID != "" {
		q.Set("excludeBookingId", check.ExcludeBookingID)
	}

	var v entities.BookingValidation
	if err := c.do(ctx, http.MethodGet, "/api/bookings/check-availability", q, nil, &v); err != nil {
		return nil, err
	}
	v.Normalize()
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

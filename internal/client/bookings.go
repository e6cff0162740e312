package client

import (
	"context"
	"facilitybooking/internal/entities"
	"net/http"
	"net/url"
	"strconv"
)

func (c *BookingAPI) ListBookings(ctx context.Context, f entities.BookingFilter) ([]entities.Booking, error) {
	q := url.Values{}
	if f.FacilityID != "" {
		q.Set("facilityId", f.FacilityID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if !f.From.IsZero() {
		q.Set("startDate", formatTime(f.From))
	}
	if !f.To.IsZero() {
		q.Set("endDate", formatTime(f.To))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}

	var out []entities.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingAPI) GetBooking(ctx context.Context, id string) (*entities.Booking, error) {
	var out entities.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BookingAPI) CreateBooking(ctx context.Context, req entities.CreateBookingRequest) (*entities.Booking, error) {
	var out entities.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BookingAPI) UpdateBooking(ctx context.Context, id string, req entities.UpdateBookingRequest) (*entities.Booking, error) {
	var out entities.Booking
	if err := c.do(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BookingAPI) DeleteBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/bookings/"+url.PathEscape(id), nil, nil, nil)
}

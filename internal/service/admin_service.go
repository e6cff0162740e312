package service

import (
	"context"
	"errors"
	"facilitybooking/internal/db"
	"facilitybooking/internal/entities"
	"facilitybooking/internal/repository"
	"fmt"
)

// ErrInvalidInput wraps every request the admin service rejects before calling the backend.
var ErrInvalidInput = errors.New("invalid input")

// AdminBackend is the booking API surface behind the admin screens.
type AdminBackend interface {
	ListFacilities(ctx context.Context) ([]entities.Facility, error)
	GetFacility(ctx context.Context, id string) (*entities.Facility, error)
	CreateFacility(ctx context.Context, req entities.FacilityRequest) (*entities.Facility, error)
	UpdateFacility(ctx context.Context, id string, req entities.FacilityRequest) (*entities.Facility, error)
	DeleteFacility(ctx context.Context, id string) error

	ListBookings(ctx context.Context, f entities.BookingFilter) ([]entities.Booking, error)
	GetBooking(ctx context.Context, id string) (*entities.Booking, error)
	UpdateBooking(ctx context.Context, id string, req entities.UpdateBookingRequest) (*entities.Booking, error)
	DeleteBooking(ctx context.Context, id string) error

	CheckAvailability(ctx context.Context, check entities.AvailabilityCheck) (*entities.BookingValidation, error)
	ExportAnalytics(ctx context.Context, r entities.ExportRequest) (*entities.Report, error)
}

// CheckoutLister lists persisted checkouts.
type CheckoutLister interface {
	ListCheckouts(ctx context.Context, f repository.CheckoutFilter) ([]db.Checkout, int64, error)
}

type AdminService struct {
	backend   AdminBackend
	checkouts CheckoutLister
}

func NewAdminService(backend AdminBackend, checkouts CheckoutLister) *AdminService {
	return &AdminService{backend: backend, checkouts: checkouts}
}

func (s *AdminService) ListFacilities(ctx context.Context) ([]entities.Facility, error) {
	return s.backend.ListFacilities(ctx)
}

func (s *AdminService) GetFacility(ctx context.Context, id string) (*entities.Facility, error) {
	return s.backend.GetFacility(ctx, id)
}

func validateFacility(req entities.FacilityRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	if req.PricePerHour < 0 {
		return fmt.Errorf("%w: pricePerHour must not be negative", ErrInvalidInput)
	}
	return nil
}

func (s *AdminService) CreateFacility(ctx context.Context, req entities.FacilityRequest) (*entities.Facility, error) {
	if err := validateFacility(req); err != nil {
		return nil, err
	}
	return s.backend.CreateFacility(ctx, req)
}

func (s *AdminService) UpdateFacility(ctx context.Context, id string, req entities.FacilityRequest) (*entities.Facility, error) {
	if err := validateFacility(req); err != nil {
		return nil, err
	}
	return s.backend.UpdateFacility(ctx, id, req)
}

func (s *AdminService) DeleteFacility(ctx context.Context, id string) error {
	return s.backend.DeleteFacility(ctx, id)
}

// ListBookings pages through the backend's bookings. The total counts the returned page.
func (s *AdminService) ListBookings(ctx context.Context, f entities.BookingFilter) (*entities.BookingsList, error) {
	bookings, err := s.backend.ListBookings(ctx, f)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []entities.Booking{}
	}
	return &entities.BookingsList{
		Total:    int64(len(bookings)),
		Limit:    f.Limit,
		Offset:   f.Offset,
		Bookings: bookings,
	}, nil
}

func (s *AdminService) GetBooking(ctx context.Context, id string) (*entities.Booking, error) {
	return s.backend.GetBooking(ctx, id)
}

// UpdateBooking re-checks the new range, ignoring the booking itself, before patching.
// A rejected check comes back as the validation with a nil booking.
func (s *AdminService) UpdateBooking(ctx context.Context, id string, req entities.UpdateBookingRequest) (*entities.Booking, *entities.BookingValidation, error) {
	if req.Participants != nil && *req.Participants <= 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, entities.ErrInvalidParticipants)
	}
	if req.StartTime != nil || req.EndTime != nil {
		current, err := s.backend.GetBooking(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		start, end := current.StartTime, current.EndTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		if req.EndTime != nil {
			end = *req.EndTime
		}
		if !end.After(start) {
			return nil, nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
		}

		validation, err := s.backend.CheckAvailability(ctx, entities.AvailabilityCheck{
			FacilityID:       current.FacilityID,
			StartTime:        start,
			EndTime:          end,
			ExcludeBookingID: id,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("check availability for booking %s: %w", id, err)
		}
		if !validation.IsValid {
			return nil, validation, nil
		}
	}
	booking, err := s.backend.UpdateBooking(ctx, id, req)
	return booking, nil, err
}

func (s *AdminService) DeleteBooking(ctx context.Context, id string) error {
	return s.backend.DeleteBooking(ctx, id)
}

func (s *AdminService) ExportAnalytics(ctx context.Context, r entities.ExportRequest) (*entities.Report, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.backend.ExportAnalytics(ctx, r)
}

func (s *AdminService) ListCheckouts(ctx context.Context, f repository.CheckoutFilter) ([]entities.CheckoutResponse, int64, error) {
	rows, total, err := s.checkouts.ListCheckouts(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]entities.CheckoutResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toCheckoutResponse(&rows[i]))
	}
	return out, total, nil
}

package service

import (
	"context"
	"errors"
	"facilitybooking/internal/db"
	"facilitybooking/internal/entities"
	"facilitybooking/internal/repository"
	"facilitybooking/internal/utils"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	statusPending  = "pending"
	statusActive   = "active"
	statusFinished = "finished"
	statusCanceled = "canceled"

	paymentPending   = "pending"
	paymentSucceeded = "succeeded"
	paymentRefunded  = "refunded"
	paymentNone      = "none"
)

// cancelNotice is how long before the start a checkout can still be cancelled.
const cancelNotice = 12 * time.Hour

var (
	ErrNoAcceptedSlot   = errors.New("no slot has been accepted in this session")
	ErrInvalidContact   = errors.New("name and email are required")
	ErrCancelTooLate    = errors.New("checkouts can only be cancelled more than 12 hours before the start time")
	ErrAlreadyCancelled = errors.New("checkout is already cancelled")
)

// AcceptedSlots resolves the slot a session approved.
type AcceptedSlots interface {
	AcceptedSlot(sessionID string) (*entities.TimeSlot, *entities.Facility, int, error)
}

// BookingBackend is the part of the booking API a checkout writes to.
type BookingBackend interface {
	GetFacility(ctx context.Context, id string) (*entities.Facility, error)
	CreateBooking(ctx context.Context, req entities.CreateBookingRequest) (*entities.Booking, error)
	UpdateBooking(ctx context.Context, id string, req entities.UpdateBookingRequest) (*entities.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// CheckoutStore persists checkouts.
type CheckoutStore interface {
	CreateCheckout(ctx context.Context, c *db.Checkout) error
	GetCheckoutByCode(ctx context.Context, code, email string) (*db.Checkout, error)
	GetCheckoutByCodeOnly(ctx context.Context, code string) (*db.Checkout, error)
	GetCheckoutByStripeSessionID(ctx context.Context, sessionID string) (*db.Checkout, error)
	GetCheckoutByPaymentIntentID(ctx context.Context, paymentIntentID string) (*db.Checkout, error)
	UpdateCheckoutAndPaymentStatus(ctx context.Context, id int, status, paymentStatus string) error
	UpdateCheckoutStripeInfo(ctx context.Context, id int, paymentIntentID, status, paymentStatus string) error
}

type CheckoutService struct {
	selections AcceptedSlots
	backend    BookingBackend
	store      CheckoutStore
	payments   PaymentGateway
	notifier   Notifier
	currency   string
	now        func() time.Time
}

func NewCheckoutService(selections AcceptedSlots, backend BookingBackend, store CheckoutStore, payments PaymentGateway, notifier Notifier, currency string) *CheckoutService {
	if currency == "" {
		currency = "eur"
	}
	return &CheckoutService{
		selections: selections,
		backend:    backend,
		store:      store,
		payments:   payments,
		notifier:   notifier,
		currency:   currency,
		now:        time.Now,
	}
}

func newCheckoutCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// CreateCheckout books the session's accepted slot in the backend as pending and opens a payment.
// The backend booking is removed again when the payment or the ledger write fails.
func (s *CheckoutService) CreateCheckout(ctx context.Context, sessionID string, contact entities.Contact) (*entities.CheckoutSessionResponse, error) {
	if strings.TrimSpace(contact.Name) == "" || strings.TrimSpace(contact.Email) == "" {
		return nil, ErrInvalidContact
	}
	slot, facility, participants, err := s.selections.AcceptedSlot(sessionID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		facility, err = s.backend.GetFacility(ctx, slot.FacilityID)
		if err != nil {
			return nil, fmt.Errorf("load facility %s: %w", slot.FacilityID, err)
		}
	}

	rate := slot.Price
	if rate == 0 {
		rate = facility.PricePerHour
	}
	total, err := utils.BookingPrice(rate, slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, err
	}
	amount, err := utils.ChargeAmount(total, contact.PaymentMethod)
	if err != nil {
		return nil, err
	}

	booking, err := s.backend.CreateBooking(ctx, entities.CreateBookingRequest{
		FacilityID:   slot.FacilityID,
		UserID:       contact.UserID,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Participants: participants,
		Status:       entities.BookingPending,
		TotalPrice:   total,
		Notes:        contact.Notes,
		ContactName:  contact.Name,
		ContactEmail: contact.Email,
		ContactPhone: contact.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	language := contact.Language
	if language == "" {
		language = "en"
	}
	code := newCheckoutCode()
	now := s.now().UTC()
	checkout := &db.Checkout{
		Code:            code,
		BookingID:       booking.ID,
		FacilityID:      slot.FacilityID,
		FacilityName:    facility.Name,
		SlotID:          slot.ID,
		UserName:        contact.Name,
		UserEmail:       contact.Email,
		UserPhone:       contact.Phone,
		Participants:    participants,
		PaymentMethodID: contact.PaymentMethod,
		Status:          statusPending,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		TotalPrice:      total,
		Language:        language,
		PaymentStatus:   paymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	description := fmt.Sprintf("%s %s", facility.Name, code)
	url, stripeSessionID, err := s.payments.CreateCheckoutSession(amount, s.currency, description, contact.Email, language, code)
	if err != nil {
		s.releaseBooking(booking.ID)
		return nil, fmt.Errorf("create payment session: %w", err)
	}
	checkout.StripeSessionID = stripeSessionID

	if err := s.store.CreateCheckout(ctx, checkout); err != nil {
		log.Printf("Error creating checkout in repository: %v", err)
		s.releaseBooking(booking.ID)
		return nil, err
	}

	return &entities.CheckoutSessionResponse{Code: code, URL: url, SessionID: stripeSessionID}, nil
}

// releaseBooking deletes a booking the checkout could not complete.
func (s *CheckoutService) releaseBooking(bookingID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.backend.DeleteBooking(ctx, bookingID); err != nil {
		log.Printf("ALERT: could not release booking %s: %v", bookingID, err)
	}
}

func (s *CheckoutService) GetCheckout(ctx context.Context, code, email string) (*entities.CheckoutResponse, error) {
	c, err := s.store.GetCheckoutByCode(ctx, code, email)
	if err != nil {
		return nil, err
	}
	return toCheckoutResponse(c), nil
}

func (s *CheckoutService) GetCheckoutBySessionID(ctx context.Context, sessionID string) (*entities.CheckoutResponse, error) {
	c, err := s.store.GetCheckoutByStripeSessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toCheckoutResponse(c), nil
}

// ConfirmPayment marks a paid checkout active and confirms its booking in the backend.
// Repeated deliveries of the same payment are ignored.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, stripeSessionID, paymentIntentID string) error {
	c, err := s.store.GetCheckoutByStripeSessionID(ctx, stripeSessionID)
	if err != nil {
		return err
	}
	if c.Status == statusActive && c.PaymentStatus == paymentSucceeded {
		return nil
	}
	if err := s.store.UpdateCheckoutStripeInfo(ctx, c.ID, paymentIntentID, statusActive, paymentSucceeded); err != nil {
		return err
	}

	confirmed := entities.BookingConfirmed
	if _, err := s.backend.UpdateBooking(ctx, c.BookingID, entities.UpdateBookingRequest{Status: &confirmed}); err != nil {
		// the payment is recorded; an admin can confirm the booking by hand
		log.Printf("ALERT: checkout %s paid but booking %s could not be confirmed: %v", c.Code, c.BookingID, err)
	}

	c.Status, c.PaymentStatus, c.StripePaymentIntentID = statusActive, paymentSucceeded, paymentIntentID
	s.notify(c)
	return nil
}

// HandleRefund records a refund issued in Stripe. The checkout is found by payment intent,
// or through Stripe when the intent was never stored.
func (s *CheckoutService) HandleRefund(ctx context.Context, paymentIntentID string) error {
	c, err := s.store.GetCheckoutByPaymentIntentID(ctx, paymentIntentID)
	if errors.Is(err, repository.ErrCheckoutNotFound) {
		sessionID, lookupErr := s.payments.GetSessionIDByPaymentIntentID(paymentIntentID)
		if lookupErr != nil {
			return lookupErr
		}
		c, err = s.store.GetCheckoutByStripeSessionID(ctx, sessionID)
	}
	if err != nil {
		return err
	}
	if c.Status == statusCanceled && c.PaymentStatus == paymentRefunded {
		return nil
	}
	return s.store.UpdateCheckoutAndPaymentStatus(ctx, c.ID, statusCanceled, paymentRefunded)
}

// CancelCheckout cancels a checkout more than 12 hours before it starts, refunding it when paid
// and deleting its booking from the backend.
func (s *CheckoutService) CancelCheckout(ctx context.Context, code string) error {
	c, err := s.store.GetCheckoutByCodeOnly(ctx, code)
	if err != nil {
		return err
	}
	if c.Status == statusCanceled {
		return ErrAlreadyCancelled
	}
	if c.StartTime.Sub(s.now().UTC()) < cancelNotice {
		log.Printf("Checkout %s can only be cancelled more than 12 hours before the start time", code)
		return ErrCancelTooLate
	}

	paymentStatus := paymentNone
	if c.PaymentStatus == paymentSucceeded {
		if c.StripeSessionID == "" {
			return fmt.Errorf("no Stripe session ID found for checkout code: %s", code)
		}
		if err := s.payments.RefundPaymentBySessionID(c.StripeSessionID); err != nil {
			return fmt.Errorf("refund checkout %s: %w", code, err)
		}
		paymentStatus = paymentRefunded
	}

	if err := s.store.UpdateCheckoutAndPaymentStatus(ctx, c.ID, statusCanceled, paymentStatus); err != nil {
		return err
	}
	if err := s.backend.DeleteBooking(ctx, c.BookingID); err != nil {
		log.Printf("ALERT: checkout %s cancelled but booking %s could not be deleted: %v", code, c.BookingID, err)
	}

	c.Status, c.PaymentStatus = statusCanceled, paymentStatus
	s.notify(c)
	return nil
}

func (s *CheckoutService) notify(c *db.Checkout) {
	if s.notifier == nil {
		return
	}
	resp := toCheckoutResponse(c)
	s.notifier.NotifyCheckout(*resp, statusTranslation(c.Status, c.Language))
}

func toCheckoutResponse(c *db.Checkout) *entities.CheckoutResponse {
	return &entities.CheckoutResponse{
		Code:          c.Code,
		BookingID:     c.BookingID,
		FacilityID:    c.FacilityID,
		FacilityName:  c.FacilityName,
		UserName:      c.UserName,
		UserEmail:     c.UserEmail,
		UserPhone:     c.UserPhone,
		Participants:  c.Participants,
		Status:        c.Status,
		PaymentStatus: c.PaymentStatus,
		TotalPrice:    c.TotalPrice,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Language:      c.Language,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

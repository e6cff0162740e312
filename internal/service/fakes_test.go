package service

import (
	"context"
	"facilitybooking/internal/db"
	"facilitybooking/internal/entities"
	apperrors "facilitybooking/internal/errors"
	"facilitybooking/internal/repository"
	"fmt"
	"sync"
	"time"
)

var day = time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)

func mkSlot(id string, hour, minutes, spots int) entities.TimeSlot {
	start := day.Add(time.Duration(hour) * time.Hour)
	return entities.TimeSlot{
		ID:             id,
		FacilityID:     "court-1",
		StartTime:      start,
		EndTime:        start.Add(time.Duration(minutes) * time.Minute),
		Capacity:       10,
		AvailableSpots: spots,
		Price:          20,
		IsAvailable:    true,
	}
}

// fakeBackend stands in for the booking API in every service test.
type fakeBackend struct {
	mu         sync.Mutex
	facility   entities.Facility
	days       []entities.DayAvailability
	validation *entities.BookingValidation
	checkErr   error
	createErr  error
	deleteErr  error

	bookings map[string]entities.Booking
	created  []entities.CreateBookingRequest
	updates  map[string][]entities.UpdateBookingRequest
	deleted  []string
	checks   []entities.AvailabilityCheck
	nextID   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		facility: entities.Facility{ID: "court-1", Name: "Court One", Capacity: 10, PricePerHour: 15, IsActive: true},
		days: []entities.DayAvailability{{
			Date:  "2030-03-04",
			Slots: []entities.TimeSlot{mkSlot("morning", 9, 90, 5), mkSlot("noon", 12, 30, 10)},
		}},
		validation: &entities.BookingValidation{IsValid: true, Conflicts: []entities.Conflict{}},
		bookings:   map[string]entities.Booking{},
		updates:    map[string][]entities.UpdateBookingRequest{},
	}
}

func (f *fakeBackend) GetAvailability(ctx context.Context, facilityID string, start, end time.Time) ([]entities.DayAvailability, error) {
	return f.days, nil
}

func (f *fakeBackend) CheckAvailability(ctx context.Context, check entities.AvailabilityCheck) (*entities.BookingValidation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks = append(f.checks, check)
	return f.validation, f.checkErr
}

func (f *fakeBackend) GetFacility(ctx context.Context, id string) (*entities.Facility, error) {
	fc := f.facility
	return &fc, nil
}

func (f *fakeBackend) ListFacilities(ctx context.Context) ([]entities.Facility, error) {
	return []entities.Facility{f.facility}, nil
}

func (f *fakeBackend) CreateFacility(ctx context.Context, req entities.FacilityRequest) (*entities.Facility, error) {
	return &entities.Facility{ID: "new", Name: req.Name, Capacity: req.Capacity}, nil
}

func (f *fakeBackend) UpdateFacility(ctx context.Context, id string, req entities.FacilityRequest) (*entities.Facility, error) {
	return &entities.Facility{ID: id, Name: req.Name, Capacity: req.Capacity}, nil
}

func (f *fakeBackend) DeleteFacility(ctx context.Context, id string) error {
	return nil
}

func (f *fakeBackend) ListBookings(ctx context.Context, filter entities.BookingFilter) ([]entities.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Booking
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBackend) GetBooking(ctx context.Context, id string) (*entities.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	return &b, nil
}

func (f *fakeBackend) CreateBooking(ctx context.Context, req entities.CreateBookingRequest) (*entities.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	b := entities.Booking{
		ID:           fmt.Sprintf("bk-%d", f.nextID),
		FacilityID:   req.FacilityID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Participants: req.Participants,
		Status:       req.Status,
		TotalPrice:   req.TotalPrice,
	}
	f.created = append(f.created, req)
	f.bookings[b.ID] = b
	return &b, nil
}

func (f *fakeBackend) UpdateBooking(ctx context.Context, id string, req entities.UpdateBookingRequest) (*entities.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = append(f.updates[id], req)
	b := f.bookings[id]
	if req.Status != nil {
		b.Status = *req.Status
	}
	if req.StartTime != nil {
		b.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		b.EndTime = *req.EndTime
	}
	f.bookings[id] = b
	return &b, nil
}

func (f *fakeBackend) DeleteBooking(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBackend) ExportAnalytics(ctx context.Context, r entities.ExportRequest) (*entities.Report, error) {
	return &entities.Report{ContentType: "text/csv", Filename: "report.csv", Data: []byte("a,b\n")}, nil
}

// fakeStore keeps checkouts in memory.
type fakeStore struct {
	mu        sync.Mutex
	checkouts map[int]*db.Checkout
	nextID    int
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{checkouts: map[int]*db.Checkout{}}
}

func (s *fakeStore) CreateCheckout(ctx context.Context, c *db.Checkout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	c.ID = s.nextID
	cp := *c
	s.checkouts[c.ID] = &cp
	return nil
}

func (s *fakeStore) find(match func(*db.Checkout) bool) (*db.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.checkouts {
		if match(c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrCheckoutNotFound
}

func (s *fakeStore) GetCheckoutByCode(ctx context.Context, code, email string) (*db.Checkout, error) {
	return s.find(func(c *db.Checkout) bool { return c.Code == code && c.UserEmail == email })
}

func (s *fakeStore) GetCheckoutByCodeOnly(ctx context.Context, code string) (*db.Checkout, error) {
	return s.find(func(c *db.Checkout) bool { return c.Code == code })
}

func (s *fakeStore) GetCheckoutByStripeSessionID(ctx context.Context, sessionID string) (*db.Checkout, error) {
	return s.find(func(c *db.Checkout) bool { return c.StripeSessionID == sessionID })
}

func (s *fakeStore) GetCheckoutByPaymentIntentID(ctx context.Context, paymentIntentID string) (*db.Checkout, error) {
	return s.find(func(c *db.Checkout) bool { return c.StripePaymentIntentID == paymentIntentID })
}

func (s *fakeStore) UpdateCheckoutAndPaymentStatus(ctx context.Context, id int, status, paymentStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.checkouts[id]
	if !ok {
		return repository.ErrCheckoutNotFound
	}
	c.Status, c.PaymentStatus = status, paymentStatus
	return nil
}

func (s *fakeStore) UpdateCheckoutStripeInfo(ctx context.Context, id int, paymentIntentID, status, paymentStatus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.checkouts[id]
	if !ok {
		return repository.ErrCheckoutNotFound
	}
	c.StripePaymentIntentID, c.Status, c.PaymentStatus = paymentIntentID, status, paymentStatus
	return nil
}

func (s *fakeStore) get(id int) db.Checkout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.checkouts[id]
}

func (s *fakeStore) ListCheckouts(ctx context.Context, f repository.CheckoutFilter) ([]db.Checkout, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Checkout
	for _, c := range s.checkouts {
		if f.Status == "" || c.Status == f.Status {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

type sessionCall struct {
	amount   int64
	currency string
	email    string
	language string
	code     string
}

type fakeGateway struct {
	sessions      []sessionCall
	refunds       []string
	createErr     error
	intentSession map[string]string
}

func (g *fakeGateway) CreateCheckoutSession(amount int64, currency, description, customerEmail, language, code string) (string, string, error) {
	if g.createErr != nil {
		return "", "", g.createErr
	}
	g.sessions = append(g.sessions, sessionCall{amount, currency, customerEmail, language, code})
	id := fmt.Sprintf("cs_test_%d", len(g.sessions))
	return "https://checkout.stripe.test/" + id, id, nil
}

func (g *fakeGateway) RefundPaymentBySessionID(sessionID string) error {
	g.refunds = append(g.refunds, sessionID)
	return nil
}

func (g *fakeGateway) GetSessionIDByPaymentIntentID(paymentIntentID string) (string, error) {
	if id, ok := g.intentSession[paymentIntentID]; ok {
		return id, nil
	}
	return "", fmt.Errorf("no session for %s", paymentIntentID)
}

type notification struct {
	code   string
	status string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *fakeNotifier) NotifyCheckout(c entities.CheckoutResponse, status string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{code: c.Code, status: status})
}

type sentEmail struct {
	to, name, subject, plain, html string
}

type fakeTransport struct {
	mu     sync.Mutex
	emails []sentEmail
	sms    map[string]string
}

func (t *fakeTransport) SendEmail(to, name, subject, plain, html string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emails = append(t.emails, sentEmail{to, name, subject, plain, html})
	return nil
}

func (t *fakeTransport) SendSMS(to, body string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sms == nil {
		t.sms = map[string]string{}
	}
	t.sms[to] = body
	return nil
}

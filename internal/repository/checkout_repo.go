package repository

import (
	"context"
	"database/sql"
	"errors"
	"facilitybooking/internal/db"
	"fmt"
	"time"
)

var ErrCheckoutNotFound = errors.New("checkout not found")

const checkoutColumns = `id, code, booking_id, facility_id, facility_name, slot_id, user_name, user_email, user_phone,
	participants, payment_method_id, status, start_time, end_time, total_price, language,
	stripe_session_id, stripe_payment_intent_id, payment_status, created_at, updated_at`

type CheckoutRepository struct {
	DB *sql.DB
}

func NewCheckoutRepository(db *sql.DB) *CheckoutRepository {
	return &CheckoutRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckout(row rowScanner) (*db.Checkout, error) {
	var c db.Checkout
	err := row.Scan(
		&c.ID, &c.Code, &c.BookingID, &c.FacilityID, &c.FacilityName, &c.SlotID, &c.UserName, &c.UserEmail, &c.UserPhone,
		&c.Participants, &c.PaymentMethodID, &c.Status, &c.StartTime, &c.EndTime, &c.TotalPrice, &c.Language,
		&c.StripeSessionID, &c.StripePaymentIntentID, &c.PaymentStatus, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CheckoutRepository) CreateCheckout(ctx context.Context, c *db.Checkout) error {
	query := `
		INSERT INTO checkouts
		(code, booking_id, facility_id, facility_name, slot_id, user_name, user_email, user_phone, participants,
		 payment_method_id, status, start_time, end_time, total_price, language, stripe_session_id,
		 stripe_payment_intent_id, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		c.Code,
		c.BookingID,
		c.FacilityID,
		c.FacilityName,
		c.SlotID,
		c.UserName,
		c.UserEmail,
		c.UserPhone,
		c.Participants,
		c.PaymentMethodID,
		c.Status,
		c.StartTime,
		c.EndTime,
		c.TotalPrice,
		c.Language,
		c.StripeSessionID,
		c.StripePaymentIntentID,
		c.PaymentStatus,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting checkout %s: %w", c.Code, err)
	}
	return nil
}

func (r *CheckoutRepository) getOne(ctx context.Context, where string, args ...any) (*db.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE ` + where
	c, err := scanCheckout(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("error querying checkout: %w", err)
	}
	return c, nil
}

// GetCheckoutByCode requires the email the checkout was made with.
func (r *CheckoutRepository) GetCheckoutByCode(ctx context.Context, code, email string) (*db.Checkout, error) {
	return r.getOne(ctx, `code = $1 AND lower(user_email) = lower($2)`, code, email)
}

func (r *CheckoutRepository) GetCheckoutByCodeOnly(ctx context.Context, code string) (*db.Checkout, error) {
	return r.getOne(ctx, `code = $1`, code)
}

func (r *CheckoutRepository) GetCheckoutByStripeSessionID(ctx context.Context, sessionID string) (*db.Checkout, error) {
	return r.getOne(ctx, `stripe_session_id = $1`, sessionID)
}

func (r *CheckoutRepository) GetCheckoutByPaymentIntentID(ctx context.Context, paymentIntentID string) (*db.Checkout, error) {
	return r.getOne(ctx, `stripe_payment_intent_id = $1`, paymentIntentID)
}

func (r *CheckoutRepository) UpdateCheckoutAndPaymentStatus(ctx context.Context, id int, status, paymentStatus string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE checkouts SET status = $2, payment_status = $3, updated_at = $4 WHERE id = $1`,
		id, status, paymentStatus, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error updating checkout %d status: %w", id, err)
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected for checkout %d: %w", id, err)
	}
	if n == 0 {
		return ErrCheckoutNotFound
	}
	return nil
}

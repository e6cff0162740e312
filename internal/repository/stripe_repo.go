package repository

import (
	"context"
	"fmt"
	"time"
)

// UpdateCheckoutStripeInfo records the payment intent and statuses reported by Stripe.
func (r *CheckoutRepository) UpdateCheckoutStripeInfo(ctx context.Context, id int, paymentIntentID, status, paymentStatus string) error {
	query := `
		UPDATE checkouts
		SET
			stripe_payment_intent_id = $2,
			status = $3,
			payment_status = $4,
			updated_at = $5
		WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query,
		id,
		paymentIntentID,
		status,
		paymentStatus,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error updating checkout %d with Stripe info: %w", id, err)
	}
	return expectOneRow(res, id)
}

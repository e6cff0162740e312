package service

import (
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/refund"
)

// PaymentGateway is the part of Stripe the checkout flow depends on.
type PaymentGateway interface {
	CreateCheckoutSession(amount int64, currency, description, customerEmail, language, code string) (string, string, error)
	RefundPaymentBySessionID(sessionID string) error
	GetSessionIDByPaymentIntentID(paymentIntentID string) (string, error)
}

type StripeService struct {
	publicURL string
}

// NewStripeService sets the Stripe API key for the process.
func NewStripeService(secretKey, publicURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *StripeService) RefundPaymentBySessionID(sessionID string) error {
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return err
	}
	if sess.PaymentIntent == nil || sess.PaymentIntent.ID == "" {
		return fmt.Errorf("no PaymentIntent found for session %s", sessionID)
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(sess.PaymentIntent.ID),
	}
	_, err = refund.New(params)
	return err
}

// CreateCheckoutSession returns the hosted payment page URL and the session id.
func (s *StripeService) CreateCheckoutSession(amount int64, currency, description, customerEmail, language, code string) (string, string, error) {
	if language == "" {
		language = "en"
	}
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
					UnitAmount: stripe.Int64(amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(fmt.Sprintf("%s/%s/bookings/confirmation?session_id={CHECKOUT_SESSION_ID}", s.publicURL, language)),
		CancelURL:         stripe.String(fmt.Sprintf("%s/%s/bookings/failed?session_id={CHECKOUT_SESSION_ID}", s.publicURL, language)),
		CustomerEmail:     stripe.String(customerEmail),
		ClientReferenceID: stripe.String(code),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", "", err
	}
	return sess.URL, sess.ID, nil
}

// GetSessionIDByPaymentIntentID looks the checkout session up in Stripe.
func (s *StripeService) GetSessionIDByPaymentIntentID(paymentIntentID string) (string, error) {
	params := &stripe.CheckoutSessionListParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Limit = stripe.Int64(1)
	it := session.List(params)
	for it.Next() {
		sess := it.CheckoutSession()
		if sess != nil && sess.ID != "" {
			return sess.ID, nil
		}
	}
	if err := it.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no session_id found for PaymentIntentID %s", paymentIntentID)
}

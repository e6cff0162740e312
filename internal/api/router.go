package api

import (
	"facilitybooking/internal/auth"
	"net/http"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Selection  *SelectionHandler
	Checkout   *CheckoutHandler
	Stripe     *StripeWebhookHandler
	Admin      *AdminHandler
	AdminToken string
}

// NewRouter registers the public, webhook and admin routes. Nil handlers leave their routes out.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "ok")
	}).Methods("GET")

	// Booking dialog
	if h.Selection != nil {
		s := r.PathPrefix("/api/selections").Subrouter()
		s.HandleFunc("", h.Selection.Create).Methods("POST")
		s.HandleFunc("/{id}", h.Selection.Get).Methods("GET")
		s.HandleFunc("/{id}", h.Selection.Delete).Methods("DELETE")
		s.HandleFunc("/{id}/criteria", h.Selection.SetCriteria).Methods("PUT")
		s.HandleFunc("/{id}/requirements", h.Selection.SetRequirements).Methods("PUT")
		s.HandleFunc("/{id}/retry", h.Selection.Retry).Methods("POST")
		s.HandleFunc("/{id}/reset", h.Selection.Reset).Methods("POST")
		s.HandleFunc("/{id}/slots/{slotId}/select", h.Selection.SelectSlot).Methods("POST")
		if h.Checkout != nil {
			s.HandleFunc("/{id}/checkout", h.Checkout.CreateCheckout).Methods("POST")
		}
	}

	if h.Checkout != nil {
		r.HandleFunc("/api/checkouts/session", h.Checkout.GetCheckoutBySessionID).Methods("GET")
		r.HandleFunc("/api/checkouts/{code}", h.Checkout.GetCheckout).Methods("GET", "POST")
		r.HandleFunc("/api/checkouts/{code}", h.Checkout.CancelCheckout).Methods("DELETE")
	}

	if h.Stripe != nil {
		r.HandleFunc("/api/stripe/webhook", h.Stripe.HandleWebhook).Methods("POST")
	}

	if h.Admin != nil {
		admin := r.PathPrefix("/admin").Subrouter()
		admin.Use(auth.AdminAuthMiddleware(h.AdminToken))
		admin.HandleFunc("/facilities", h.Admin.ListFacilities).Methods("GET")
		admin.HandleFunc("/facilities", h.Admin.CreateFacility).Methods("POST")
		admin.HandleFunc("/facilities/{id}", h.Admin.GetFacility).Methods("GET")
		admin.HandleFunc("/facilities/{id}", h.Admin.UpdateFacility).Methods("PUT")
		admin.HandleFunc("/facilities/{id}", h.Admin.DeleteFacility).Methods("DELETE")
		admin.HandleFunc("/bookings", h.Admin.ListBookings).Methods("GET")
		admin.HandleFunc("/bookings/{id}", h.Admin.GetBooking).Methods("GET")
		admin.HandleFunc("/bookings/{id}", h.Admin.UpdateBooking).Methods("PATCH")
		admin.HandleFunc("/bookings/{id}", h.Admin.DeleteBooking).Methods("DELETE")
		admin.HandleFunc("/analytics/export", h.Admin.ExportAnalytics).Methods("POST")
		admin.HandleFunc("/checkouts", h.Admin.ListCheckouts).Methods("GET")
	}

	return r
}

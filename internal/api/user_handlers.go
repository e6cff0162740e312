package api

import (
	"facilitybooking/internal/entities"
	"facilitybooking/internal/service"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// CheckoutHandler turns an accepted slot into a paid booking and lets customers manage it.
type CheckoutHandler struct {
	Service *service.CheckoutService
}

func NewCheckoutHandler(svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Service: svc}
}

func (h *CheckoutHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var contact entities.Contact
	if err := decodeJSON(w, r, &contact); err != nil {
		badRequest(w, "Invalid request")
		return
	}
	resp, err := h.Service.CreateCheckout(r.Context(), mux.Vars(r)["id"], contact)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetCheckout requires the email the checkout was made with, as ?email= or a JSON body.
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" && r.ContentLength > 0 {
		var req CheckoutLookupRequest
		if err := decodeJSON(w, r, &req); err != nil {
			badRequest(w, "Invalid request")
			return
		}
		email = req.Email
	}
	if strings.TrimSpace(email) == "" {
		badRequest(w, "email required")
		return
	}
	res, err := h.Service.GetCheckout(r.Context(), code, email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CheckoutHandler) GetCheckoutBySessionID(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		badRequest(w, "session_id required")
		return
	}
	res, err := h.Service.GetCheckoutBySessionID(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CheckoutHandler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.CancelCheckout(r.Context(), mux.Vars(r)["code"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Checkout cancelled")
}

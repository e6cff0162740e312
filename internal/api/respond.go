package api

import (
	"context"
	"encoding/json"
	"errors"
	"facilitybooking/internal/entities"
	apperrors "facilitybooking/internal/errors"
	"facilitybooking/internal/repository"
	"facilitybooking/internal/service"
	"facilitybooking/internal/workflow"
	"log"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// statusFor maps service and backend errors onto the status returned to the caller.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, repository.ErrCheckoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrNoFacility),
		errors.Is(err, workflow.ErrNoDate),
		errors.Is(err, entities.ErrInvalidDuration),
		errors.Is(err, entities.ErrInvalidParticipants),
		errors.Is(err, service.ErrInvalidContact),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrNotReady),
		errors.Is(err, workflow.ErrSlotNotSelectable),
		errors.Is(err, service.ErrNoAcceptedSlot),
		errors.Is(err, service.ErrCancelTooLate),
		errors.Is(err, service.ErrAlreadyCancelled):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	// backend statuses pass through, except its own failures
	if code := apperrors.StatusCode(err, 0); code != 0 {
		if code >= 500 {
			return http.StatusBadGateway
		}
		return code
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		log.Printf("Request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}

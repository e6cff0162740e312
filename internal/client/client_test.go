package client

import (
	"context"
	"encoding/json"
	"facilitybooking/internal/entities"
	apperrors "facilitybooking/internal/errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, h http.HandlerFunc) *BookingAPI {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "secret", 5*time.Second)
}

func TestGetAvailability(t *testing.T) {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/facilities/court-1/availability", r.URL.Path)
		assert.Equal(t, "2024-03-04T00:00:00Z", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2024-03-05T00:00:00Z", r.URL.Query().Get("endDate"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		io.WriteString(w, `[{"date":"2024-03-04","slots":[
			{"id":"s1","startTime":"2024-03-04T09:00:00Z","endTime":"2024-03-04T10:00:00Z",
			 "capacity":8,"availableSpots":5,"price":12.5,"isAvailable":true,"isBlocked":false}]}]`)
	})

	days, err := api.GetAvailability(context.Background(), "court-1", start, end)

	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Slots, 1)
	s := days[0].Slots[0]
	assert.Equal(t, "court-1", s.FacilityID)
	assert.Equal(t, 5, s.AvailableSpots)
	assert.Equal(t, 60.0, s.DurationMinutes())
}

func TestGetAvailability_RejectsInvalidSlot(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"date":"2024-03-04","slots":[
			{"id":"s1","startTime":"2024-03-04T09:00:00Z","endTime":"2024-03-04T10:00:00Z",
			 "capacity":4,"availableSpots":6,"isAvailable":true}]}]`)
	})

	_, err := api.GetAvailability(context.Background(), "court-1", time.Now(), time.Now().Add(time.Hour))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "available spots 6 outside [0, 4]")
}

func TestGetAvailability_HTTPError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"facility not found"}`)
	})

	_, err := api.GetAvailability(context.Background(), "missing", time.Now(), time.Now().Add(time.Hour))

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "facility not found")
}

func TestCheckAvailability(t *testing.T) {
	start := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)

	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/bookings/check-availability", r.URL.Path)
		assert.Equal(t, "court-1", q.Get("facilityId"))
		assert.Equal(t, "2024-01-01T18:00:00Z", q.Get("startTime"))
		assert.Equal(t, "2024-01-01T19:00:00Z", q.Get("endTime"))
		assert.Equal(t, "b-9", q.Get("excludeBookingId"))
		io.WriteString(w, `{"isValid":false,"conflicts":[{"bookingId":"b-1","type":"overlap","message":"already booked"}],
			"suggestions":["2024-01-01T20:00:00Z"]}`)
	})

	v, err := api.CheckAvailability(context.Background(), entities.AvailabilityCheck{
		FacilityID:       "court-1",
		StartTime:        start,
		EndTime:          start.Add(time.Hour),
		ExcludeBookingID: "b-9",
	})

	require.NoError(t, err)
	assert.False(t, v.IsValid)
	require.Len(t, v.Conflicts, 1)
	assert.Equal(t, entities.ConflictOverlap, v.Conflicts[0].Type)
	assert.NotNil(t, v.Warnings)
	assert.Equal(t, []string{"2024-01-01T20:00:00Z"}, v.Suggestions)
}

func TestCheckAvailability_RejectsInconsistentVerdict(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"isValid":true,"conflicts":[{"type":"capacity","message":"full"}]}`)
	})
	start := time.Now()

	_, err := api.CheckAvailability(context.Background(), entities.AvailabilityCheck{
		FacilityID: "court-1", StartTime: start, EndTime: start.Add(time.Hour),
	})

	require.Error(t, err)
}

func TestCheckAvailability_UnknownConflictTypeStillRejects(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"isValid":false,"conflicts":[{"type":"holiday_closure","message":"closed"}]}`)
	})
	start := time.Now()

	v, err := api.CheckAvailability(context.Background(), entities.AvailabilityCheck{
		FacilityID: "court-1", StartTime: start, EndTime: start.Add(time.Hour),
	})

	require.NoError(t, err)
	assert.False(t, v.IsValid)
	require.Len(t, v.Conflicts, 1)
	assert.Equal(t, entities.ConflictOther, v.Conflicts[0].Type)
	assert.Equal(t, "holiday_closure: closed", v.Conflicts[0].Message)
}

func TestCreateAndUpdateBooking(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req entities.CreateBookingRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "court-1", req.FacilityID)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(entities.Booking{ID: "b-1", FacilityID: req.FacilityID, Status: entities.BookingPending})
		case http.MethodPatch:
			assert.Equal(t, "/api/bookings/b-1", r.URL.Path)
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"status": "confirmed"}, body)
			json.NewEncoder(w).Encode(entities.Booking{ID: "b-1", Status: entities.BookingConfirmed})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	b, err := api.CreateBooking(ctx, entities.CreateBookingRequest{FacilityID: "court-1"})
	require.NoError(t, err)
	assert.Equal(t, "b-1", b.ID)

	status := entities.BookingConfirmed
	b, err = api.UpdateBooking(ctx, "b-1", entities.UpdateBookingRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entities.BookingConfirmed, b.Status)

	require.NoError(t, api.DeleteBooking(ctx, "b-1"))
}

func TestExportAnalytics(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "pdf", r.URL.Query().Get("format"))
		assert.Equal(t, "bookings", r.URL.Query().Get("dataType"))
		assert.Equal(t, "true", r.URL.Query().Get("includeCharts"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="report-q1.pdf"`)
		io.WriteString(w, "%PDF-1.4")
	})

	report, err := api.ExportAnalytics(context.Background(), entities.ExportRequest{
		Format: entities.ExportPDF, DataType: "bookings", IncludeCharts: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "report-q1.pdf", report.Filename)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), report.Data)
}

func TestExportAnalytics_InvalidFormat(t *testing.T) {
	api := New("http://unused.invalid", "", time.Second)

	_, err := api.ExportAnalytics(context.Background(), entities.ExportRequest{Format: "docx", DataType: "bookings"})

	require.Error(t, err)
}

package api

import (
	"facilitybooking/internal/entities"
	"facilitybooking/internal/repository"
	"facilitybooking/internal/service"
	"facilitybooking/internal/utils"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Service *service.AdminService
	loc     *time.Location
}

func NewAdminHandler(svc *service.AdminService, loc *time.Location) *AdminHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AdminHandler{Service: svc, loc: loc}
}

func (h *AdminHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.Service.ListFacilities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if facilities == nil {
		facilities = []entities.Facility{}
	}
	writeJSON(w, http.StatusOK, facilities)
}

func (h *AdminHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	f, err := h.Service.GetFacility(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *AdminHandler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	var req entities.FacilityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request")
		return
	}
	f, err := h.Service.CreateFacility(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *AdminHandler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	var req entities.FacilityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request")
		return
	}
	f, err := h.Service.UpdateFacility(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *AdminHandler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteFacility(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Facility deleted")
}

func queryInt(q url.Values, key string) (int, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func (h *AdminHandler) queryDate(q url.Values, key string) (time.Time, error) {
	v := q.Get(key)
	if v == "" {
		return time.Time{}, nil
	}
	return utils.ParseDate(v, h.loc)
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := entities.BookingFilter{
		FacilityID: q.Get("facilityId"),
		Status:     q.Get("status"),
	}
	var err error
	if f.From, err = h.queryDate(q, "from"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if f.To, err = h.queryDate(q, "to"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if f.Limit, err = queryInt(q, "limit"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if f.Offset, err = queryInt(q, "offset"); err != nil {
		badRequest(w, err.Error())
		return
	}

	list, err := h.Service.ListBookings(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Service.GetBooking(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UpdateBooking answers 409 with the validation when the new range conflicts.
func (h *AdminHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.UpdateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request")
		return
	}
	booking, validation, err := h.Service.UpdateBooking(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	if validation != nil {
		writeJSON(w, http.StatusConflict, BookingUpdateResponse{Validation: validation})
		return
	}
	writeJSON(w, http.StatusOK, BookingUpdateResponse{Booking: booking, Updated: true})
}

func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteBooking(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Booking deleted")
}

// ExportAnalytics streams the backend's report back as a download.
func (h *AdminHandler) ExportAnalytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := entities.ExportRequest{
		Format:        q.Get("format"),
		DataType:      q.Get("dataType"),
		IncludeCharts: q.Get("includeCharts") == "true",
	}
	var err error
	if req.StartDate, err = h.queryDate(q, "startDate"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if req.EndDate, err = h.queryDate(q, "endDate"); err != nil {
		badRequest(w, err.Error())
		return
	}

	report, err := h.Service.ExportAnalytics(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(report.Data)
}

func (h *AdminHandler) ListCheckouts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.CheckoutFilter{
		Date:       q.Get("date"),
		FacilityID: q.Get("facilityId"),
		Status:     q.Get("status"),
	}
	var err error
	if f.Limit, err = queryInt(q, "limit"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if f.Offset, err = queryInt(q, "offset"); err != nil {
		badRequest(w, err.Error())
		return
	}
	checkouts, total, err := h.Service.ListCheckouts(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CheckoutsListResponse{Total: total, Checkouts: checkouts})
}

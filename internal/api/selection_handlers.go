package api

import (
	"facilitybooking/internal/service"
	"facilitybooking/internal/utils"
	"facilitybooking/internal/workflow"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// SelectionHandler drives one booking selection per open booking dialog.
type SelectionHandler struct {
	Service *service.SelectionService
	loc     *time.Location
}

func NewSelectionHandler(svc *service.SelectionService, loc *time.Location) *SelectionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SelectionHandler{Service: svc, loc: loc}
}

func (h *SelectionHandler) respond(w http.ResponseWriter, id string, snap workflow.Snapshot, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SelectionResponse{ID: id, Snapshot: snap})
}

func (h *SelectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSelectionRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			badRequest(w, "Invalid request")
			return
		}
	}
	id, snap, err := h.Service.Create(req.DurationMinutes, req.Participants)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SelectionResponse{ID: id, Snapshot: snap})
}

func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sel, err := h.Service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SelectionResponse{ID: id, Snapshot: sel.Snapshot()})
}

// SetCriteria chooses facility and date and loads the day's slots.
func (h *SelectionHandler) SetCriteria(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req CriteriaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request")
		return
	}
	date, err := utils.ParseDate(req.Date, h.loc)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	snap, err := h.Service.Load(r.Context(), id, req.FacilityID, date)
	h.respond(w, id, snap, err)
}

func (h *SelectionHandler) SetRequirements(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req RequirementsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request")
		return
	}
	snap, err := h.Service.SetRequirements(id, req.DurationMinutes, req.Participants)
	h.respond(w, id, snap, err)
}

func (h *SelectionHandler) Retry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	snap, err := h.Service.Retry(r.Context(), id)
	h.respond(w, id, snap, err)
}

func (h *SelectionHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	snap, err := h.Service.SelectSlot(r.Context(), id, vars["slotId"])
	h.respond(w, id, snap, err)
}

func (h *SelectionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	snap, err := h.Service.Reset(id)
	h.respond(w, id, snap, err)
}

func (h *SelectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aura-studio/class-booking/internal/model"
	"github.com/aura-studio/class-booking/internal/repository"
	"github.com/aura-studio/class-booking/internal/service"
)

// EventHandler holds the HTTP handlers for class management and the
// availability view.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// Create handles POST /api/events
// With repeat_weekly set, one class is created per week for the rest of the
// month; the response lists every created class.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	events, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, events)
}

// List handles GET /api/events?instructor={id}&date=YYYY-MM-DD
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := h.svc.List(r.Context(), q.Get("instructor"), q.Get("date"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list classes")
		return
	}
	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.ClassEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Get handles GET /api/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "class not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get class")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Update handles PUT /api/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Availability handles GET /api/availability?date=YYYY-MM-DD
// It returns the selectable dates and the time-sorted class list with
// seats-remaining for the optional date filter.
func (h *EventHandler) Availability(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Availability(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute availability")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aura-studio/class-booking/internal/calendar"
	"github.com/aura-studio/class-booking/internal/model"
	"github.com/aura-studio/class-booking/internal/repository"
	"github.com/aura-studio/class-booking/internal/service"
)

// BookingHandler holds the HTTP handlers for reservations and their calendar
// exports.
type BookingHandler struct {
	svc *service.BookingService
	cal calendar.Formatter
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService, cal calendar.Formatter) *BookingHandler {
	return &BookingHandler{svc: svc, cal: cal}
}

// calendarResponse carries the add-to-calendar artifacts for a booking.
type calendarResponse struct {
	Details   *model.BookingDetails `json:"details"`
	GoogleURL string                `json:"google_url"`
	ICS       string                `json:"ics"`
}

// Create handles POST /api/bookings
// Performs a concurrency-safe reservation for the referenced class.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "class not found")
		case errors.Is(err, repository.ErrClassFull):
			writeError(w, http.StatusConflict, "class is fully booked")
		default:
			writeServiceError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// List handles GET /api/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ListForEvent handles GET /api/events/{id}/bookings
func (h *BookingHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListByEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "class not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// Delete handles DELETE /api/bookings/{id}
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Calendar handles GET /api/bookings/{id}/calendar
// Returns the booking details together with a Google Calendar link and the
// iCalendar text.
func (h *BookingHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	details, entry, ok := h.calendarEntry(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, calendarResponse{
		Details:   details,
		GoogleURL: h.cal.GoogleLink(entry),
		ICS:       h.cal.ICS(entry),
	})
}

// CalendarICS handles GET /api/bookings/{id}/calendar.ics
// Serves the iCalendar payload as a file download.
func (h *BookingHandler) CalendarICS(w http.ResponseWriter, r *http.Request) {
	_, entry, ok := h.calendarEntry(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="class-booking.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.cal.ICS(entry)))
}

func (h *BookingHandler) calendarEntry(w http.ResponseWriter, r *http.Request) (*model.BookingDetails, calendar.Entry, bool) {
	details, err := h.svc.Details(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
		} else {
			writeError(w, http.StatusInternalServerError, "failed to load booking")
		}
		return nil, calendar.Entry{}, false
	}
	return details, calendar.Entry{
		BookingID:      details.BookingID,
		Title:          details.Title,
		InstructorName: details.InstructorName,
		Date:           details.Date,
		Time:           details.Time,
		Duration:       details.Duration,
	}, true
}

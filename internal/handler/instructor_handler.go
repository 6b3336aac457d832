package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aura-studio/class-booking/internal/model"
	"github.com/aura-studio/class-booking/internal/repository"
	"github.com/aura-studio/class-booking/internal/service"
)

// InstructorHandler holds the HTTP handlers for instructor management.
type InstructorHandler struct {
	svc *service.InstructorService
}

// NewInstructorHandler constructs an InstructorHandler.
func NewInstructorHandler(svc *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{svc: svc}
}

// Create handles POST /api/instructors
func (h *InstructorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateInstructorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	instructor, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, instructor)
}

// List handles GET /api/instructors
func (h *InstructorHandler) List(w http.ResponseWriter, r *http.Request) {
	instructors, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list instructors")
		return
	}
	if instructors == nil {
		instructors = []model.Instructor{}
	}
	writeJSON(w, http.StatusOK, instructors)
}

// Get handles GET /api/instructors/{id}
func (h *InstructorHandler) Get(w http.ResponseWriter, r *http.Request) {
	instructor, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "instructor not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get instructor")
		return
	}
	writeJSON(w, http.StatusOK, instructor)
}

// Delete handles DELETE /api/instructors/{id}
func (h *InstructorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

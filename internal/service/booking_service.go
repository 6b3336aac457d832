package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aura-studio/class-booking/internal/model"
	"github.com/aura-studio/class-booking/internal/repository"
)

// BookingService orchestrates reservation operations.
type BookingService struct {
	bookings BookingStore
	events   EventStore
}

// NewBookingService constructs a BookingService with its dependencies.
func NewBookingService(bookings BookingStore, events EventStore) *BookingService {
	return &BookingService{bookings: bookings, events: events}
}

// Create validates the reservation request and delegates the
// concurrency-safe seat allocation to the repository layer. The write is a
// single best-effort attempt; failures are terminal and surface to the
// caller.
func (s *BookingService) Create(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	if req.EventID == "" {
		return nil, validationErrorf("class id is required")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, validationErrorf("name is required")
	}
	req.CountryCode = strings.TrimSpace(req.CountryCode)
	if req.CountryCode == "" {
		return nil, validationErrorf("country code is required")
	}
	req.Phone = digitsOnly(req.Phone)
	if len(req.Phone) < 6 || len(req.Phone) > 15 {
		return nil, validationErrorf("phone must be 6 to 15 digits")
	}

	booking, err := s.bookings.Book(ctx, req.EventID, req.Name, req.CountryCode, req.Phone)
	if err != nil {
		// Surface domain errors directly so handlers can set correct HTTP status.
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrClassFull) {
			return nil, err
		}
		return nil, fmt.Errorf("book class: %w", err)
	}
	return booking, nil
}

// List returns all bookings.
func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.List(ctx)
}

// ListByEvent returns all bookings for a class.
func (s *BookingService) ListByEvent(ctx context.Context, eventID string) ([]model.Booking, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, repository.ErrNotFound
	}
	return s.bookings.ListByEvent(ctx, eventID)
}

// Details returns the denormalized booking details used by confirmation
// screens and calendar export.
func (s *BookingService) Details(ctx context.Context, id string) (*model.BookingDetails, error) {
	if id == "" {
		return nil, validationErrorf("booking id is required")
	}
	details, err := s.bookings.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("booking details: %w", err)
	}
	return details, nil
}

// Delete cancels a reservation and releases its seat.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validationErrorf("booking id is required")
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

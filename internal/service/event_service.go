package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aura-studio/class-booking/internal/model"
	"github.com/aura-studio/class-booking/internal/repository"
	"github.com/aura-studio/class-booking/internal/schedule"
)

// AvailabilityView is the derived view the booking screen renders: the date
// selector plus the filtered, time-sorted class list with availability.
type AvailabilityView struct {
	Dates   []schedule.DateBucket   `json:"dates"`
	Classes []schedule.VisibleClass `json:"classes"`
}

// EventService orchestrates class-related business operations.
type EventService struct {
	events      EventStore
	instructors InstructorStore
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, instructors InstructorStore) *EventService {
	return &EventService{events: events, instructors: instructors}
}

// Create validates the request, expands the optional weekly recurrence, and
// creates one class per occurrence. All created classes are returned in
// chronological order.
func (s *EventService) Create(ctx context.Context, req model.CreateClassRequest) ([]model.ClassEvent, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validateClassFields(ctx, req.Title, req.Date, req.Time, req.Duration, req.InstructorID, req.MaxSeats); err != nil {
		return nil, err
	}

	created := make([]model.ClassEvent, 0, 1)
	for _, occ := range schedule.ExpandRecurrence(req) {
		date, err := model.ParseDate(occ.Date)
		if err != nil {
			return nil, validationErrorf("date is invalid")
		}
		event, err := s.events.Create(ctx, occ.Title, date, occ.Time, occ.Duration, occ.InstructorID, occ.MaxSeats)
		if err != nil {
			return nil, fmt.Errorf("create class: %w", err)
		}
		created = append(created, *event)
	}
	return created, nil
}

// List returns all classes, optionally filtered by instructor and calendar
// date ("2006-01-02"). An unparseable date matches nothing.
func (s *EventService) List(ctx context.Context, instructorID, date string) ([]model.ClassEvent, error) {
	events, err := s.events.List(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		return events, nil
	}

	filtered := make([]model.ClassEvent, 0, len(events))
	for _, e := range events {
		if !e.Date.IsZero() && e.Date.UTC().Format(model.DateLayout) == date {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// Get returns a single class by ID.
func (s *EventService) Get(ctx context.Context, id string) (*model.ClassEvent, error) {
	if id == "" {
		return nil, validationErrorf("class id is required")
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get class: %w", err)
	}
	return event, nil
}

// Update validates and applies edits to an existing class.
func (s *EventService) Update(ctx context.Context, id string, req model.UpdateClassRequest) (*model.ClassEvent, error) {
	if id == "" {
		return nil, validationErrorf("class id is required")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validateClassFields(ctx, req.Title, req.Date, req.Time, req.Duration, req.InstructorID, req.MaxSeats); err != nil {
		return nil, err
	}
	date, _ := model.ParseDate(req.Date)

	event, err := s.events.Update(ctx, id, req.Title, date, req.Time, req.Duration, req.InstructorID, req.MaxSeats)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update class: %w", err)
	}
	return event, nil
}

// Delete removes a class and, through the repository, its bookings.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validationErrorf("class id is required")
	}
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}

// Availability runs the view-model over the current class list. selectedDate
// may be empty for an unfiltered view.
func (s *EventService) Availability(ctx context.Context, selectedDate string) (*AvailabilityView, error) {
	events, err := s.events.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return &AvailabilityView{
		Dates:   schedule.DeriveSelectableDates(events),
		Classes: schedule.VisibleClasses(events, selectedDate),
	}, nil
}

func (s *EventService) validateClassFields(ctx context.Context, title, date, startTime string, duration int, instructorID string, maxSeats int) error {
	if title == "" {
		return validationErrorf("class title is required")
	}
	if date == "" {
		return validationErrorf("date is required")
	}
	if _, err := model.ParseDate(date); err != nil {
		return validationErrorf("date is invalid")
	}
	if !isValidTime(startTime) {
		return validationErrorf("time must be a 24-hour HH:MM value")
	}
	if duration <= 0 {
		return validationErrorf("duration must be a positive number of minutes")
	}
	if duration > 24*60 {
		return validationErrorf("duration cannot exceed one day")
	}
	if maxSeats <= 0 {
		return validationErrorf("max seats must be a positive integer")
	}
	if maxSeats > 1000 {
		return validationErrorf("max seats cannot exceed 1,000")
	}
	if instructorID == "" {
		return validationErrorf("instructor is required")
	}
	if _, err := s.instructors.GetByID(ctx, instructorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return validationErrorf("instructor does not exist")
		}
		return fmt.Errorf("check instructor: %w", err)
	}
	return nil
}

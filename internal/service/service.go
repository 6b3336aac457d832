// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aura-studio/class-booking/internal/model"
)

// ValidationError marks a request rejected for malformed or missing input,
// as opposed to an infrastructure failure. Handlers map it to a client error
// status.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// InstructorStore captures the persistence interactions needed for
// instructors.
type InstructorStore interface {
	Create(ctx context.Context, name string) (*model.Instructor, error)
	List(ctx context.Context) ([]model.Instructor, error)
	GetByID(ctx context.Context, id string) (*model.Instructor, error)
	Delete(ctx context.Context, id string) error
}

// EventStore captures the persistence interactions needed for classes.
type EventStore interface {
	Create(ctx context.Context, title string, date time.Time, startTime string, duration int, instructorID string, maxSeats int) (*model.ClassEvent, error)
	List(ctx context.Context, instructorID string) ([]model.ClassEvent, error)
	GetByID(ctx context.Context, id string) (*model.ClassEvent, error)
	Update(ctx context.Context, id, title string, date time.Time, startTime string, duration int, instructorID string, maxSeats int) (*model.ClassEvent, error)
	Delete(ctx context.Context, id string) error
}

// BookingStore captures the persistence interactions needed for bookings.
type BookingStore interface {
	Book(ctx context.Context, eventID, name, countryCode, phone string) (*model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Booking, error)
	GetDetails(ctx context.Context, id string) (*model.BookingDetails, error)
	Delete(ctx context.Context, id string) error
}

// isValidTime does a basic structural check of a 24-hour "HH:MM" string.
// A single-digit hour is tolerated; the view-model zero-pads for sorting.
func isValidTime(s string) bool {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	if len(mm) != 2 {
		return false
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return false
	}
	return true
}

// digitsOnly strips every non-digit character, mirroring the phone input
// normalization the booking form applies.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

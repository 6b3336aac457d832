// Package model defines the core domain types for the studio class-booking system.
package model

import "time"

// UntitledClass is the display title used when a class has no title.
const UntitledClass = "Untitled Class"

// DateLayout is the wire format for calendar dates. Class dates carry no
// time-of-day component; the start time lives in the separate Time field.
const DateLayout = "2006-01-02"

// ClassEvent represents a scheduled class with capacity and an instructor.
type ClassEvent struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	Duration       int       `json:"duration"`
	InstructorID   string    `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
	MaxSeats       int       `json:"max_seats"`
	Booked         int       `json:"booked"`
	CreatedAt      time.Time `json:"created_at"`
}

// SeatsRemaining returns the number of available seats. The result is not
// clamped: an overbooked class yields a negative count.
func (e *ClassEvent) SeatsRemaining() int {
	return e.MaxSeats - e.Booked
}

// IsFull returns true when no seats remain.
func (e *ClassEvent) IsFull() bool {
	return e.SeatsRemaining() <= 0
}

// DisplayTitle returns the class title, falling back to UntitledClass.
func (e *ClassEvent) DisplayTitle() string {
	if e.Title == "" {
		return UntitledClass
	}
	return e.Title
}

// ParseDate parses a calendar date sent by a client. Both the plain date form
// ("2006-01-02") and full RFC 3339 timestamps are accepted; any time-of-day
// component is discarded. The result is a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Instructor represents a teacher that classes reference by ID.
type Instructor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Booking represents a single attendee's reservation against one class.
type Booking struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	CountryCode string    `json:"country_code"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInstructorRequest is the payload for adding an instructor.
type CreateInstructorRequest struct {
	Name string `json:"name"`
}

// CreateClassRequest is the payload for creating a new class. When
// RepeatWeekly is set the class is repeated every seven days for the
// remainder of the month of Date.
type CreateClassRequest struct {
	Title        string `json:"title"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	InstructorID string `json:"instructor"`
	MaxSeats     int    `json:"max_seats"`
	RepeatWeekly bool   `json:"repeat_weekly"`
}

// UpdateClassRequest is the payload for editing an existing class.
type UpdateClassRequest struct {
	Title        string `json:"title"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	InstructorID string `json:"instructor"`
	MaxSeats     int    `json:"max_seats"`
}

// CreateBookingRequest is the payload for reserving a seat.
type CreateBookingRequest struct {
	EventID     string `json:"event"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

// BookingDetails is the denormalized view of a confirmed booking used for
// calendar export and confirmation screens.
type BookingDetails struct {
	BookingID      string    `json:"booking_id"`
	Title          string    `json:"title"`
	InstructorName string    `json:"instructor_name"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	Duration       int       `json:"duration"`
	Name           string    `json:"name"`
	CountryCode    string    `json:"country_code"`
	Phone          string    `json:"phone"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

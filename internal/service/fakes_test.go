package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aura-studio/class-booking/internal/model"
	"github.com/aura-studio/class-booking/internal/repository"
)

// fakeStore is an in-memory implementation of the three store interfaces,
// used to exercise the services without a database.
type fakeStore struct {
	instructors map[string]model.Instructor
	events      map[string]model.ClassEvent
	bookings    map[string]model.Booking
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		instructors: map[string]model.Instructor{},
		events:      map[string]model.ClassEvent{},
		bookings:    map[string]model.Booking{},
	}
}

func (f *fakeStore) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeStore) addInstructor(name string) model.Instructor {
	i := model.Instructor{ID: f.id(), Name: name}
	f.instructors[i.ID] = i
	return i
}

func (f *fakeStore) addEvent(e model.ClassEvent) model.ClassEvent {
	if e.ID == "" {
		e.ID = f.id()
	}
	f.events[e.ID] = e
	return e
}

// instructorStore adapts fakeStore to InstructorStore.
type instructorStore struct{ *fakeStore }

func (s instructorStore) Create(_ context.Context, name string) (*model.Instructor, error) {
	i := s.addInstructor(name)
	return &i, nil
}

func (s instructorStore) List(_ context.Context) ([]model.Instructor, error) {
	out := make([]model.Instructor, 0, len(s.instructors))
	for _, i := range s.instructors {
		out = append(out, i)
	}
	return out, nil
}

func (s instructorStore) GetByID(_ context.Context, id string) (*model.Instructor, error) {
	i, ok := s.instructors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &i, nil
}

func (s instructorStore) Delete(_ context.Context, id string) error {
	if _, ok := s.instructors[id]; !ok {
		return repository.ErrNotFound
	}
	for _, e := range s.events {
		if e.InstructorID == id {
			return repository.ErrInstructorInUse
		}
	}
	delete(s.instructors, id)
	return nil
}

// eventStore adapts fakeStore to EventStore.
type eventStore struct{ *fakeStore }

func (s eventStore) Create(_ context.Context, title string, date time.Time, startTime string, duration int, instructorID string, maxSeats int) (*model.ClassEvent, error) {
	e := s.addEvent(model.ClassEvent{
		Title:          title,
		Date:           date,
		Time:           startTime,
		Duration:       duration,
		InstructorID:   instructorID,
		InstructorName: s.instructors[instructorID].Name,
		MaxSeats:       maxSeats,
	})
	return &e, nil
}

func (s eventStore) List(_ context.Context, instructorID string) ([]model.ClassEvent, error) {
	out := make([]model.ClassEvent, 0, len(s.events))
	for _, e := range s.events {
		if instructorID != "" && e.InstructorID != instructorID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s eventStore) GetByID(_ context.Context, id string) (*model.ClassEvent, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (s eventStore) Update(_ context.Context, id, title string, date time.Time, startTime string, duration int, instructorID string, maxSeats int) (*model.ClassEvent, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.Title, e.Date, e.Time, e.Duration = title, date, startTime, duration
	e.InstructorID, e.MaxSeats = instructorID, maxSeats
	s.events[id] = e
	return &e, nil
}

func (s eventStore) Delete(_ context.Context, id string) error {
	if _, ok := s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.events, id)
	return nil
}

// bookingStore adapts fakeStore to BookingStore.
type bookingStore struct{ *fakeStore }

func (s bookingStore) Book(_ context.Context, eventID, name, countryCode, phone string) (*model.Booking, error) {
	e, ok := s.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if e.Booked >= e.MaxSeats {
		return nil, repository.ErrClassFull
	}
	e.Booked++
	s.events[eventID] = e

	b := model.Booking{ID: s.id(), EventID: eventID, Name: name, CountryCode: countryCode, Phone: phone}
	s.bookings[b.ID] = b
	return &b, nil
}

func (s bookingStore) List(_ context.Context) ([]model.Booking, error) {
	out := make([]model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (s bookingStore) ListByEvent(_ context.Context, eventID string) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s bookingStore) GetDetails(_ context.Context, id string) (*model.BookingDetails, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := s.events[b.EventID]
	return &model.BookingDetails{
		BookingID:      b.ID,
		Title:          e.Title,
		InstructorName: e.InstructorName,
		Date:           e.Date,
		Time:           e.Time,
		Duration:       e.Duration,
		Name:           b.Name,
		CountryCode:    b.CountryCode,
		Phone:          b.Phone,
	}, nil
}

func (s bookingStore) Delete(_ context.Context, id string) error {
	b, ok := s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if e, ok := s.events[b.EventID]; ok && e.Booked > 0 {
		e.Booked--
		s.events[b.EventID] = e
	}
	delete(s.bookings, id)
	return nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aura-studio/class-booking/internal/model"
	"github.com/aura-studio/class-booking/internal/repository"
)

func newBookingService(store *fakeStore) *BookingService {
	return NewBookingService(bookingStore{store}, eventStore{store})
}

func validBookingRequest(eventID string) model.CreateBookingRequest {
	return model.CreateBookingRequest{
		EventID:     eventID,
		Name:        "Lina",
		CountryCode: "+961",
		Phone:       "81 123 456",
	}
}

func TestBookingServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("books a seat and normalizes the phone", func(t *testing.T) {
		store := newFakeStore()
		event := store.addEvent(model.ClassEvent{Title: "Yoga", MaxSeats: 2})
		svc := newBookingService(store)

		booking, err := svc.Create(ctx, validBookingRequest(event.ID))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if booking.Phone != "81123456" {
			t.Errorf("phone = %q, want digits only", booking.Phone)
		}
		if store.events[event.ID].Booked != 1 {
			t.Errorf("booked = %d, want 1", store.events[event.ID].Booked)
		}
	})

	t.Run("full class is rejected with ErrClassFull", func(t *testing.T) {
		store := newFakeStore()
		event := store.addEvent(model.ClassEvent{Title: "Yoga", MaxSeats: 1})
		svc := newBookingService(store)

		if _, err := svc.Create(ctx, validBookingRequest(event.ID)); err != nil {
			t.Fatalf("first booking: %v", err)
		}
		_, err := svc.Create(ctx, validBookingRequest(event.ID))
		if !errors.Is(err, repository.ErrClassFull) {
			t.Fatalf("expected ErrClassFull, got %v", err)
		}
		if store.events[event.ID].Booked != 1 {
			t.Errorf("booked = %d after rejection, want 1", store.events[event.ID].Booked)
		}
	})

	t.Run("unknown class is rejected with ErrNotFound", func(t *testing.T) {
		svc := newBookingService(newFakeStore())

		_, err := svc.Create(ctx, validBookingRequest("missing"))
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		store := newFakeStore()
		event := store.addEvent(model.ClassEvent{Title: "Yoga", MaxSeats: 5})
		svc := newBookingService(store)

		cases := []struct {
			name   string
			mutate func(*model.CreateBookingRequest)
		}{
			{"missing event", func(r *model.CreateBookingRequest) { r.EventID = "" }},
			{"blank name", func(r *model.CreateBookingRequest) { r.Name = "   " }},
			{"missing country code", func(r *model.CreateBookingRequest) { r.CountryCode = "" }},
			{"phone too short", func(r *model.CreateBookingRequest) { r.Phone = "12345" }},
			{"phone too long", func(r *model.CreateBookingRequest) { r.Phone = "1234567890123456" }},
			{"phone without digits", func(r *model.CreateBookingRequest) { r.Phone = "call me" }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validBookingRequest(event.ID)
				tc.mutate(&req)
				_, err := svc.Create(ctx, req)
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected validation error, got %v", err)
				}
			})
		}
		if len(store.bookings) != 0 {
			t.Fatalf("no bookings should exist, got %d", len(store.bookings))
		}
	})
}

func TestBookingServiceListByEvent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	event := store.addEvent(model.ClassEvent{Title: "Yoga", MaxSeats: 5})
	svc := newBookingService(store)

	if _, err := svc.Create(ctx, validBookingRequest(event.ID)); err != nil {
		t.Fatalf("create: %v", err)
	}

	bookings, err := svc.ListByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}

	if _, err := svc.ListByEvent(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown class, got %v", err)
	}
}

func TestBookingServiceDetailsAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	event := store.addEvent(model.ClassEvent{Title: "Yoga", InstructorName: "Maya", Time: "09:00", Duration: 60, MaxSeats: 5})
	svc := newBookingService(store)

	booking, err := svc.Create(ctx, validBookingRequest(event.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	details, err := svc.Details(ctx, booking.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.Title != "Yoga" || details.InstructorName != "Maya" || details.Name != "Lina" {
		t.Fatalf("unexpected details: %+v", details)
	}

	if err := svc.Delete(ctx, booking.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if store.events[event.ID].Booked != 0 {
		t.Errorf("seat not released: booked = %d", store.events[event.ID].Booked)
	}
	if _, err := svc.Details(ctx, booking.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

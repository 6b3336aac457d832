package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aura-studio/class-booking/internal/model"
)

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Book performs a concurrency-safe reservation inside a transaction.
//
// Two clients reserving the last seat at the same time would both read free
// capacity under a naive read-then-write. SELECT ... FOR UPDATE takes a
// row-level lock on the class row so concurrent attempts are serialised and
// the seat counter cannot be overrun.
func (r *BookingRepository) Book(ctx context.Context, eventID, name, countryCode, phone string) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// Ensure the transaction is always resolved.
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var maxSeats, booked int
	err = tx.QueryRow(ctx,
		`SELECT max_seats, booked FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&maxSeats, &booked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	if booked >= maxSeats {
		err = ErrClassFull
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE events SET booked = booked + 1 WHERE id = $1`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("increment booked: %w", err)
	}

	booking := &model.Booking{
		ID:          uuid.New().String(),
		EventID:     eventID,
		Name:        name,
		CountryCode: countryCode,
		Phone:       phone,
		CreatedAt:   time.Now().UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, event_id, name, country_code, phone, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		booking.ID, booking.EventID, booking.Name, booking.CountryCode, booking.Phone, booking.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return booking, nil
}

// List returns all bookings, newest first.
func (r *BookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	return r.queryBookings(ctx,
		`SELECT id, event_id, name, country_code, phone, created_at
		 FROM bookings
		 ORDER BY created_at DESC`,
	)
}

// ListByEvent returns all bookings for a given class, oldest first.
func (r *BookingRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Booking, error) {
	return r.queryBookings(ctx,
		`SELECT id, event_id, name, country_code, phone, created_at
		 FROM bookings
		 WHERE event_id = $1
		 ORDER BY created_at ASC`,
		eventID,
	)
}

// GetDetails returns the denormalized details for one booking, joined with
// its class and instructor, for confirmation screens and calendar export.
func (r *BookingRepository) GetDetails(ctx context.Context, id string) (*model.BookingDetails, error) {
	var d model.BookingDetails
	err := r.db.QueryRow(ctx,
		`SELECT b.id, e.title, i.name, e.date, e.time, e.duration, b.name, b.country_code, b.phone
		 FROM bookings b
		 JOIN events e ON e.id = b.event_id
		 JOIN instructors i ON i.id = e.instructor_id
		 WHERE b.id = $1`,
		id,
	).Scan(&d.BookingID, &d.Title, &d.InstructorName, &d.Date, &d.Time, &d.Duration,
		&d.Name, &d.CountryCode, &d.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking details: %w", err)
	}
	return &d, nil
}

// Delete removes a booking and releases its seat. The counter never drops
// below zero even if it was already inconsistent.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var eventID string
	err = tx.QueryRow(ctx,
		`DELETE FROM bookings WHERE id = $1 RETURNING event_id`,
		id,
	).Scan(&eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE events SET booked = GREATEST(booked - 1, 0) WHERE id = $1`,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("decrement booked: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.EventID, &b.Name, &b.CountryCode, &b.Phone, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

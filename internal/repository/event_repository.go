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

const eventColumns = `e.id, e.title, e.date, e.time, e.duration,
	e.instructor_id, i.name, e.max_seats, e.booked, e.created_at`

// EventRepository handles persistence for classes.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new class and returns it with a generated UUID.
func (r *EventRepository) Create(ctx context.Context, title string, date time.Time, startTime string, duration int, instructorID string, maxSeats int) (*model.ClassEvent, error) {
	event := &model.ClassEvent{
		ID:           uuid.New().String(),
		Title:        title,
		Date:         date,
		Time:         startTime,
		Duration:     duration,
		InstructorID: instructorID,
		MaxSeats:     maxSeats,
		Booked:       0,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, date, time, duration, instructor_id, max_seats, booked, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.ID, event.Title, event.Date, event.Time, event.Duration,
		event.InstructorID, event.MaxSeats, event.Booked, event.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	// Pick up the joined instructor name so the caller gets a complete row.
	return r.GetByID(ctx, event.ID)
}

// List returns all classes with their instructor names, ordered by date then
// start time. When instructorID is non-empty, only that instructor's classes
// are returned.
func (r *EventRepository) List(ctx context.Context, instructorID string) ([]model.ClassEvent, error) {
	query := `SELECT ` + eventColumns + `
		 FROM events e
		 JOIN instructors i ON i.id = e.instructor_id`
	args := []any{}
	if instructorID != "" {
		query += ` WHERE e.instructor_id = $1`
		args = append(args, instructorID)
	}
	query += ` ORDER BY e.date ASC, e.time ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.ClassEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID returns a single class or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.ClassEvent, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+eventColumns+`
		 FROM events e
		 JOIN instructors i ON i.id = e.instructor_id
		 WHERE e.id = $1`,
		id,
	)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// Update replaces the editable fields of a class. The booked counter is only
// ever touched by booking operations.
func (r *EventRepository) Update(ctx context.Context, id, title string, date time.Time, startTime string, duration int, instructorID string, maxSeats int) (*model.ClassEvent, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE events
		 SET title = $2, date = $3, time = $4, duration = $5, instructor_id = $6, max_seats = $7
		 WHERE id = $1`,
		id, title, date, startTime, duration, instructorID, maxSeats,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a class; its bookings cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (model.ClassEvent, error) {
	var e model.ClassEvent
	err := row.Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Duration,
		&e.InstructorID, &e.InstructorName, &e.MaxSeats, &e.Booked, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ClassEvent{}, pgx.ErrNoRows
		}
		return model.ClassEvent{}, fmt.Errorf("scan event: %w", err)
	}
	return e, nil
}

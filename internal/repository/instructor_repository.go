package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aura-studio/class-booking/internal/model"
)

// InstructorRepository handles persistence for instructors.
type InstructorRepository struct {
	db *pgxpool.Pool
}

// NewInstructorRepository constructs an InstructorRepository.
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// Create inserts a new instructor and returns it with a generated UUID.
func (r *InstructorRepository) Create(ctx context.Context, name string) (*model.Instructor, error) {
	instructor := &model.Instructor{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO instructors (id, name, created_at) VALUES ($1, $2, $3)`,
		instructor.ID, instructor.Name, instructor.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert instructor: %w", err)
	}
	return instructor, nil
}

// List returns all instructors ordered by name.
func (r *InstructorRepository) List(ctx context.Context) ([]model.Instructor, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM instructors ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	defer rows.Close()

	var instructors []model.Instructor
	for rows.Next() {
		var i model.Instructor
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan instructor: %w", err)
		}
		instructors = append(instructors, i)
	}
	return instructors, rows.Err()
}

// GetByID returns a single instructor or ErrNotFound.
func (r *InstructorRepository) GetByID(ctx context.Context, id string) (*model.Instructor, error) {
	var i model.Instructor
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM instructors WHERE id = $1`,
		id,
	).Scan(&i.ID, &i.Name, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	return &i, nil
}

// Delete removes an instructor. Deletion is restricted while classes still
// reference the instructor.
func (r *InstructorRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrInstructorInUse
		}
		return fmt.Errorf("delete instructor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

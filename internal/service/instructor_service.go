package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aura-studio/class-booking/internal/model"
	"github.com/aura-studio/class-booking/internal/repository"
)

// InstructorService orchestrates instructor operations.
type InstructorService struct {
	instructors InstructorStore
}

// NewInstructorService constructs an InstructorService with its dependencies.
func NewInstructorService(instructors InstructorStore) *InstructorService {
	return &InstructorService{instructors: instructors}
}

// Create validates the request and delegates to the repository.
func (s *InstructorService) Create(ctx context.Context, req model.CreateInstructorRequest) (*model.Instructor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationErrorf("instructor name is required")
	}
	return s.instructors.Create(ctx, name)
}

// List returns all instructors.
func (s *InstructorService) List(ctx context.Context) ([]model.Instructor, error) {
	return s.instructors.List(ctx)
}

// Get returns a single instructor by ID.
func (s *InstructorService) Get(ctx context.Context, id string) (*model.Instructor, error) {
	if id == "" {
		return nil, validationErrorf("instructor id is required")
	}
	instructor, err := s.instructors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	return instructor, nil
}

// Delete removes an instructor. Instructors with scheduled classes cannot be
// deleted.
func (s *InstructorService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validationErrorf("instructor id is required")
	}
	err := s.instructors.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInstructorInUse) {
			return err
		}
		return fmt.Errorf("delete instructor: %w", err)
	}
	return nil
}

// Package repository implements all database queries for the class-booking
// system. It uses pgx directly (no ORM) for transparency and performance.
package repository

import "errors"

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrClassFull is returned when a class has no remaining seats.
var ErrClassFull = errors.New("class is fully booked")

// ErrInstructorInUse is returned when deleting an instructor that still has
// classes scheduled.
var ErrInstructorInUse = errors.New("instructor has scheduled classes")

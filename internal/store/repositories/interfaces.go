package repositories

import (
	"context"
	"errors"

	"catalog/internal/domain/course"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// CourseRepository defines the contract for course data access
type CourseRepository interface {
	Save(ctx context.Context, c *course.Course) error
	FindByID(ctx context.Context, id int64) (*course.Course, error)
	// FindAll returns every course in insertion order. List endpoints shape
	// the result in memory.
	FindAll(ctx context.Context) ([]*course.Course, error)
}

// Package memory is an in-process CourseRepository for tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"catalog/internal/domain/course"
	"catalog/internal/store/repositories"
)

type courseRepository struct {
	mu      sync.RWMutex
	courses []*course.Course
	nextID  int64
}

// NewCourseRepository returns an empty repository.
func NewCourseRepository() repositories.CourseRepository {
	return &courseRepository{nextID: 1}
}

func (r *courseRepository) Save(ctx context.Context, c *course.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *c
	if c.ID == 0 {
		c.ID = r.nextID
		cp.ID = c.ID
		r.nextID++
		r.courses = append(r.courses, &cp)
		return nil
	}
	for i, existing := range r.courses {
		if existing.ID == c.ID {
			r.courses[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("update course %d: %w", c.ID, repositories.ErrNotFound)
}

func (r *courseRepository) FindByID(ctx context.Context, id int64) (*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.courses {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *courseRepository) FindAll(ctx context.Context) ([]*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*course.Course, len(r.courses))
	for i, c := range r.courses {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

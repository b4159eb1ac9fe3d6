package course

import (
	"fmt"
	"strings"
	"time"

	"catalog/internal/query"
)

// Course is one entry of the catalog
type Course struct {
	ID          int64
	Title       string
	Instructor  string
	Category    string
	Level       Level
	Price       Money
	Featured    bool
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Money represents a price in whole currency units
type Money int64

// Level represents course difficulty
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Record field names exposed to list queries
const (
	FieldID         = "id"
	FieldTitle      = "title"
	FieldInstructor = "instructor"
	FieldCategory   = "category"
	FieldLevel      = "level"
	FieldPrice      = "price"
	FieldFeatured   = "featured"
	FieldPublished  = "published"
	FieldCreated    = "created"
)

// Schema declares the type of every course record field.
var Schema = query.Schema{
	FieldID:         query.Number,
	FieldTitle:      query.String,
	FieldInstructor: query.String,
	FieldCategory:   query.String,
	FieldLevel:      query.String,
	FieldPrice:      query.Number,
	FieldFeatured:   query.Bool,
	FieldPublished:  query.Date,
	FieldCreated:    query.Date,
}

// NewCourse creates a new course with validation
func NewCourse(title, instructor, category string, level Level, price Money, publishedAt time.Time) (*Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, DomainError{Code: ErrInvalidTitle, Message: "title is required"}
	}
	if price < 0 {
		return nil, DomainError{Code: ErrInvalidPrice, Message: fmt.Sprintf("price cannot be negative: %d", price)}
	}
	if level == "" {
		level = LevelBeginner
	}
	if !level.Valid() {
		return nil, DomainError{Code: ErrInvalidLevel, Message: fmt.Sprintf("unknown level %q", level)}
	}

	now := time.Now().UTC()
	return &Course{
		Title:       title,
		Instructor:  strings.TrimSpace(instructor),
		Category:    strings.TrimSpace(category),
		Level:       level,
		Price:       price,
		PublishedAt: publishedAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsPublished reports whether the course is visible at t
func (c *Course) IsPublished(t time.Time) bool {
	return !c.PublishedAt.IsZero() && !c.PublishedAt.After(t)
}

// Record returns the course as a query record. Dates are RFC 3339 strings so
// the record serialises the same way it compares.
func (c *Course) Record() query.Record {
	r := query.Record{
		FieldID:         c.ID,
		FieldTitle:      c.Title,
		FieldInstructor: c.Instructor,
		FieldCategory:   c.Category,
		FieldLevel:      string(c.Level),
		FieldPrice:      int64(c.Price),
		FieldFeatured:   c.Featured,
		FieldCreated:    c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !c.PublishedAt.IsZero() {
		r[FieldPublished] = c.PublishedAt.UTC().Format(time.RFC3339)
	}
	return r
}

// Records converts a slice of courses to query records
func Records(courses []*Course) []query.Record {
	out := make([]query.Record, len(courses))
	for i, c := range courses {
		out[i] = c.Record()
	}
	return out
}

// DomainError represents a domain-level error
type DomainError struct {
	Message string
	Code    string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("domain error [%s]: %s", e.Code, e.Message)
}

// Domain error codes
const (
	ErrInvalidTitle = "INVALID_TITLE"
	ErrInvalidPrice = "INVALID_PRICE"
	ErrInvalidLevel = "INVALID_LEVEL"
)

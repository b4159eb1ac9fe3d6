package postgres

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/domain/course"
	"catalog/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const courseColumns = `id, title, instructor, category, level, price, featured, published_at, created_at, updated_at`

// courseRepository implements CourseRepository on postgres
type courseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) repositories.CourseRepository {
	return &courseRepository{db: db}
}

// Save saves a course (insert or update)
func (r *courseRepository) Save(ctx context.Context, c *course.Course) error {
	if c.ID == 0 {
		return r.insert(ctx, c)
	}
	return r.update(ctx, c)
}

// FindByID finds a course by ID
func (r *courseRepository) FindByID(ctx context.Context, id int64) (*course.Course, error) {
	row := r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
	c, err := scanCourse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return c, err
}

// FindAll loads every course ordered by id
func (r *courseRepository) FindAll(ctx context.Context) ([]*course.Course, error) {
	rows, err := r.db.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*course.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *courseRepository) insert(ctx context.Context, c *course.Course) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO courses (title, instructor, category, level, price, featured, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		c.Title, c.Instructor, c.Category, string(c.Level), int64(c.Price),
		c.Featured, publishedAt(c), c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
}

func (r *courseRepository) update(ctx context.Context, c *course.Course) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE courses
		   SET title = $1, instructor = $2, category = $3, level = $4, price = $5,
		       featured = $6, published_at = $7, updated_at = now()
		 WHERE id = $8`,
		c.Title, c.Instructor, c.Category, string(c.Level), int64(c.Price),
		c.Featured, publishedAt(c), c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update course %d: %w", c.ID, repositories.ErrNotFound)
	}
	return nil
}

func publishedAt(c *course.Course) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: c.PublishedAt, Valid: !c.PublishedAt.IsZero()}
}

// scanCourse works for both pgx.Row and pgx.Rows
func scanCourse(row pgx.Row) (*course.Course, error) {
	var c course.Course
	var level string
	var price int64
	var published pgtype.Timestamptz

	err := row.Scan(&c.ID, &c.Title, &c.Instructor, &c.Category, &level, &price,
		&c.Featured, &published, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Level = course.Level(level)
	c.Price = course.Money(price)
	if published.Valid {
		c.PublishedAt = published.Time
	}
	return &c, nil
}

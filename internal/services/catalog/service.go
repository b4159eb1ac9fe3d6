package catalog

import (
	"context"
	"time"

	"catalog/internal/cache"
	"catalog/internal/domain/course"
	"catalog/internal/metrics"
	"catalog/internal/query"
	"catalog/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

const coursesResource = "courses"

// Cache stores shaped list pages. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// Paging holds the endpoint page size settings
type Paging struct {
	DefaultSize int
	MaxSize     int
	SizeParam   string
}

// CourseQueryConfig returns the list configuration of the courses endpoint
func CourseQueryConfig(p Paging) query.Config {
	return query.Config{
		Schema: course.Schema,
		FilterFields: []string{
			course.FieldTitle, course.FieldInstructor, course.FieldCategory,
			course.FieldLevel, course.FieldPrice, course.FieldFeatured,
			course.FieldPublished,
		},
		OrderFields: []string{
			course.FieldTitle, course.FieldPrice, course.FieldPublished,
			course.FieldCreated, course.FieldID,
		},
		SearchFields:    []string{course.FieldTitle, course.FieldInstructor, course.FieldCategory},
		DefaultOrdering: query.OrderSpec{{Field: course.FieldID}},
		DefaultPageSize: p.DefaultSize,
		MaxPageSize:     p.MaxSize,
		PageSizeParam:   p.SizeParam,
	}
}

// Service handles course catalog reads
type Service struct {
	courseRepo repositories.CourseRepository
	shaper     *query.Shaper
	cache      Cache
	now        func() time.Time
}

// NewService creates a new catalog service. It fails when the paging
// settings cannot configure the courses endpoint.
func NewService(courseRepo repositories.CourseRepository, p Paging, c Cache) (*Service, error) {
	shaper, err := query.New(CourseQueryConfig(p))
	if err != nil {
		return nil, err
	}
	return &Service{courseRepo: courseRepo, shaper: shaper, cache: c, now: time.Now}, nil
}

// PageSizeParam returns the name of the page size parameter
func (s *Service) PageSizeParam() string { return s.shaper.PageSizeParam() }

// ListCourses filters, orders and paginates the published catalog for one
// request. The cache holds the shaped page only; links are built from the
// request every time.
func (s *Service) ListCourses(ctx context.Context, req ListRequest) (*ListResponse, error) {
	key := ""
	if s.cache != nil {
		key = cache.Key(coursesResource, req.Params)
		var cached query.PageResult
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("list cache get failed")
		} else if hit {
			metrics.ListTotal.WithLabelValues(coursesResource, "hit").Inc()
			return envelope(cached, req), nil
		}
	}

	q := s.shaper.ParseQuery(req.Params)
	if len(q.Ignored) > 0 {
		metrics.IgnoredParams.WithLabelValues(coursesResource).Add(float64(len(q.Ignored)))
		log.Debug().Strs("ignored", q.Ignored).Str("resource", coursesResource).Msg("ignored list params")
	}

	courses, err := s.courseRepo.FindAll(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "list_courses", Err: err}
	}
	now := s.now()
	visible := make([]*course.Course, 0, len(courses))
	for _, c := range courses {
		if c.IsPublished(now) {
			visible = append(visible, c)
		}
	}

	start := time.Now()
	res := s.shaper.Shape(course.Records(visible), q)
	metrics.ShapeDuration.WithLabelValues(coursesResource).Observe(time.Since(start).Seconds())

	if s.cache == nil {
		metrics.ListTotal.WithLabelValues(coursesResource, "off").Inc()
		return envelope(res, req), nil
	}
	metrics.ListTotal.WithLabelValues(coursesResource, "miss").Inc()
	if err := s.cache.Set(ctx, key, res); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("list cache set failed")
	}
	return envelope(res, req), nil
}

// GetCourse returns a single published course record
func (s *Service) GetCourse(ctx context.Context, id int64) (query.Record, error) {
	c, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, &ServiceError{Op: "get_course", Err: err}
	}
	if !c.IsPublished(s.now()) {
		return nil, &ServiceError{Op: "get_course", Err: repositories.ErrNotFound}
	}
	return c.Record(), nil
}

// ServiceError represents a catalog service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "catalog service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

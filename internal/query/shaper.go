// Package query shapes list endpoint results: it filters a collection of
// records, orders what is left and cuts one page out of it.
//
// A Shaper is configured once per endpoint with the fields clients may
// filter and order by. Request input outside that configuration is dropped,
// never executed, and malformed paging input falls back to defaults, so
// Shape itself cannot fail.
package query

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Config describes one list endpoint.
type Config struct {
	Schema Schema

	// FilterFields and OrderFields are the client-controllable fields. Nil
	// means "not configured" and is rejected by New; an empty slice
	// disables the feature.
	FilterFields []string
	OrderFields  []string

	// SearchFields are string fields matched by the search parameter.
	SearchFields []string

	DefaultOrdering OrderSpec
	DefaultPageSize int
	MaxPageSize     int

	// PageSizeParam names the page size query parameter. Defaults to
	// "perpage".
	PageSizeParam string
}

// ConfigError reports an unusable Config.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("query config %s: %s", e.Field, e.Reason)
}

// Query is the parsed, per-request input to Shape.
type Query struct {
	Filters  []FilterClause
	Ordering OrderSpec
	Search   string
	Page     PageRequest

	// Ignored lists the request parameters that were dropped while parsing.
	Ignored []string
}

// Shaper applies filter, order and paginate in that order. It is immutable
// and safe for concurrent use.
type Shaper struct {
	schema          Schema
	filterable      map[string]bool
	orderable       map[string]bool
	searchFields    []string
	defaultOrdering OrderSpec
	defaultSize     int
	maxSize         int
	sizeParam       string
}

// New validates cfg and returns a Shaper for it.
func New(cfg Config) (*Shaper, error) {
	if len(cfg.Schema) == 0 {
		return nil, &ConfigError{Field: "Schema", Reason: "required"}
	}
	if cfg.FilterFields == nil {
		return nil, &ConfigError{Field: "FilterFields", Reason: "required"}
	}
	if cfg.OrderFields == nil {
		return nil, &ConfigError{Field: "OrderFields", Reason: "required"}
	}
	if len(cfg.DefaultOrdering) == 0 {
		return nil, &ConfigError{Field: "DefaultOrdering", Reason: "required"}
	}
	if cfg.DefaultPageSize <= 0 {
		return nil, &ConfigError{Field: "DefaultPageSize", Reason: "must be positive"}
	}
	if cfg.MaxPageSize <= 0 {
		return nil, &ConfigError{Field: "MaxPageSize", Reason: "must be positive"}
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		return nil, &ConfigError{Field: "DefaultPageSize", Reason: "exceeds MaxPageSize"}
	}

	filterable, err := fieldSet(cfg.Schema, "FilterFields", cfg.FilterFields)
	if err != nil {
		return nil, err
	}
	orderable, err := fieldSet(cfg.Schema, "OrderFields", cfg.OrderFields)
	if err != nil {
		return nil, err
	}
	for _, f := range cfg.SearchFields {
		if typ, ok := cfg.Schema[f]; !ok || typ != String {
			return nil, &ConfigError{Field: "SearchFields", Reason: fmt.Sprintf("%q is not a string field", f)}
		}
	}
	for _, k := range cfg.DefaultOrdering {
		if _, ok := cfg.Schema[k.Field]; !ok {
			return nil, &ConfigError{Field: "DefaultOrdering", Reason: fmt.Sprintf("unknown field %q", k.Field)}
		}
	}

	sizeParam := cfg.PageSizeParam
	if sizeParam == "" {
		sizeParam = "perpage"
	}
	switch sizeParam {
	case PageParam, OrderingParam, SearchParam:
		return nil, &ConfigError{Field: "PageSizeParam", Reason: fmt.Sprintf("%q is reserved", sizeParam)}
	}

	schema := make(Schema, len(cfg.Schema))
	for k, v := range cfg.Schema {
		schema[k] = v
	}
	return &Shaper{
		schema:          schema,
		filterable:      filterable,
		orderable:       orderable,
		searchFields:    append([]string(nil), cfg.SearchFields...),
		defaultOrdering: append(OrderSpec(nil), cfg.DefaultOrdering...),
		defaultSize:     cfg.DefaultPageSize,
		maxSize:         cfg.MaxPageSize,
		sizeParam:       sizeParam,
	}, nil
}

func fieldSet(schema Schema, name string, fields []string) (map[string]bool, error) {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		if _, ok := schema[f]; !ok {
			return nil, &ConfigError{Field: name, Reason: fmt.Sprintf("unknown field %q", f)}
		}
		set[f] = true
	}
	return set, nil
}

// PageSizeParam returns the name of the page size query parameter.
func (s *Shaper) PageSizeParam() string { return s.sizeParam }

// Shape filters, orders and paginates records. records is not modified.
func (s *Shaper) Shape(records []Record, q Query) PageResult {
	fold := cases.Fold()

	var preds []predicate
	for _, c := range q.Filters {
		if !s.filterable[c.Field] {
			continue
		}
		preds = append(preds, c.compile(s.schema, fold))
	}
	if q.Search != "" && len(s.searchFields) > 0 {
		preds = append(preds, searchPredicate(s.schema, s.searchFields, q.Search, fold))
	}

	filtered := make([]Record, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if !p(r) {
				continue next
			}
		}
		filtered = append(filtered, r)
	}

	sortStable(filtered, s.ordering(q.Ordering), s.schema)

	page, size := s.clamp(q.Page)
	return paginate(filtered, page, size)
}

// ordering drops keys that are not orderable, falling back to the default
// when nothing remains.
func (s *Shaper) ordering(spec OrderSpec) OrderSpec {
	var out OrderSpec
	for _, k := range spec {
		if s.orderable[k.Field] {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return s.defaultOrdering
	}
	return out
}

// clamp normalises a page request. Size 0 means the default size.
func (s *Shaper) clamp(req PageRequest) (page, size int) {
	page = max(req.Page, 1)
	size = req.Size
	if size == 0 {
		size = s.defaultSize
	}
	size = min(max(size, 1), s.maxSize)
	return page, size
}

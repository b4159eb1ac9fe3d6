package query

import (
	"errors"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Reserved query parameter names.
const (
	PageParam     = "page"
	OrderingParam = "ordering"
	SearchParam   = "search"
)

// lookupSep separates a field from its operator, as in "price__lte".
const lookupSep = "__"

// ParseQuery reads a Query from request parameters:
//
//	?title=algebra&price__lte=400&ordering=-price,title&page=2&perpage=20
//
// Parameters naming fields or operators the endpoint does not allow are
// recorded in Query.Ignored and otherwise dropped. Empty values are skipped.
func (s *Shaper) ParseQuery(values url.Values) Query {
	q := Query{
		Search: strings.TrimSpace(values.Get(SearchParam)),
		Page: PageRequest{
			Page: s.parsePage(values.Get(PageParam)),
			Size: s.parseSize(values.Get(s.sizeParam)),
		},
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		switch key {
		case PageParam, OrderingParam, SearchParam, s.sizeParam:
			continue
		}
		field, opName, hasOp := strings.Cut(key, lookupSep)
		op := Exact
		if hasOp {
			var ok bool
			if op, ok = ParseOp(opName); !ok {
				q.Ignored = append(q.Ignored, key)
				continue
			}
		}
		if !s.filterable[field] {
			q.Ignored = append(q.Ignored, key)
			continue
		}
		for _, v := range values[key] {
			if v == "" {
				continue
			}
			q.Filters = append(q.Filters, FilterClause{Field: field, Op: op, Value: v})
		}
	}

	for _, k := range ParseOrdering(values.Get(OrderingParam)) {
		if !s.orderable[k.Field] {
			q.Ignored = append(q.Ignored, OrderingParam+"="+k.String())
			continue
		}
		q.Ordering = append(q.Ordering, k)
	}

	return q
}

func (s *Shaper) parsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		// too large to represent, but still past the last page
		return math.MaxInt
	}
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (s *Shaper) parseSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return s.defaultSize
	}
	return min(max(n, 1), s.maxSize)
}

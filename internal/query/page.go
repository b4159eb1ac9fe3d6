package query

// PageRequest selects one page of a result. Zero values mean "use the
// default"; the shaper clamps both fields before slicing.
type PageRequest struct {
	Page int
	Size int
}

// PageResult is one page of shaped records plus pagination metadata.
// Items never aliases the caller's input slice.
type PageResult struct {
	Items       []Record
	Total       int
	Page        int
	PageSize    int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

// paginate slices records for page (>= 1) and size (>= 1). A page past the
// end yields no items.
func paginate(records []Record, page, size int) PageResult {
	total := len(records)
	totalPages := 0
	if total > 0 {
		totalPages = (total + size - 1) / size
	}

	items := []Record{}
	if page <= totalPages {
		start := (page - 1) * size
		end := min(start+size, total)
		items = append(items, records[start:end]...)
	}

	return PageResult{
		Items:       items,
		Total:       total,
		Page:        page,
		PageSize:    size,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

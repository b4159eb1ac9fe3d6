package catalog

import (
	"net/url"
	"strconv"

	"catalog/internal/query"
)

// ListRequest represents a list request
type ListRequest struct {
	// Params are the raw query parameters of the request.
	Params url.Values
	// URL is the absolute URL of the list endpoint, without a query. It
	// is used to build the next and previous links.
	URL *url.URL
}

// ListResponse is the paginated envelope returned by list endpoints
type ListResponse struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []query.Record `json:"results"`
}

// pageLink returns the URL of page for the same query, or nil when base is
// nil. The page parameter is omitted for the first page.
func pageLink(base *url.URL, params url.Values, page int) *string {
	if base == nil {
		return nil
	}
	q := url.Values{}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	if page <= 1 {
		q.Del(query.PageParam)
	} else {
		q.Set(query.PageParam, strconv.Itoa(page))
	}

	u := *base
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// envelope converts a shaped page into the response body.
func envelope(res query.PageResult, req ListRequest) *ListResponse {
	out := &ListResponse{
		Count:   res.Total,
		Results: res.Items,
	}
	if res.HasNext {
		out.Next = pageLink(req.URL, req.Params, res.Page+1)
	}
	if res.HasPrevious {
		// past the end, point back at the last real page
		prev := min(res.Page-1, max(res.TotalPages, 1))
		out.Previous = pageLink(req.URL, req.Params, prev)
	}
	return out
}

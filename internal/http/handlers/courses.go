package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"catalog/internal/services/catalog"
	"catalog/internal/store/repositories"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

// ListCourses handles course listing. Filtering, ordering and paging come
// from the query string; bad parameters never fail the request.
func ListCourses(svc *catalog.Service, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := catalog.ListRequest{
			Params: r.URL.Query(),
			URL:    endpointURL(r, baseURL),
		}

		response, err := svc.ListCourses(r.Context(), req)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("list courses failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// GetCourse returns one course by id
func GetCourse(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "course not found", http.StatusNotFound)
			return
		}

		rec, err := svc.GetCourse(r.Context(), id)
		if errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "course not found", http.StatusNotFound)
			return
		}
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Int64("course_id", id).Msg("get course failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

// endpointURL is the absolute URL of the request path without its query.
// A configured base URL wins over the request's own host.
func endpointURL(r *http.Request, baseURL string) *url.URL {
	if baseURL != "" {
		if u, err := url.Parse(strings.TrimRight(baseURL, "/")); err == nil {
			u.Path += r.URL.Path
			return u
		}
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return &url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

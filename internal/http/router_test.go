package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog/internal/config"
	"catalog/internal/domain/course"
	"catalog/internal/services/catalog"
	"catalog/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, baseURL string) http.Handler {
	t.Helper()
	repo := memory.NewCourseRepository()
	titles := []string{"Algebra", "Botany", "Calculus", "Drawing", "Economics"}
	for i, title := range titles {
		c, err := course.NewCourse(title, "Ada", "general", course.LevelBeginner,
			course.Money(100*(i+1)), time.Date(2024, 2, i+1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), c))
	}

	svc, err := catalog.NewService(repo, catalog.Paging{DefaultSize: 2, MaxSize: 3, SizeParam: "perpage"}, nil)
	require.NoError(t, err)

	cfg := config.Cfg{App: config.AppCfg{Env: "test", BaseURL: baseURL}}
	return NewRouter(RouterDependencies{Config: cfg, CatalogService: svc})
}

type envelope struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []map[string]any `json:"results"`
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body envelope
	if rec.Code == http.StatusOK && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, _ := get(t, newTestRouter(t, ""), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListCoursesEndpoint(t *testing.T) {
	h := newTestRouter(t, "")
	rec, body := get(t, h, "/api/v1/courses?price__gte=200&ordering=-price&perpage=2")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 4, body.Count)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "Economics", body.Results[0]["title"])
	assert.Equal(t, "Drawing", body.Results[1]["title"])
	require.NotNil(t, body.Next)
	assert.Equal(t, "http://example.com/api/v1/courses?ordering=-price&page=2&perpage=2&price__gte=200", *body.Next)
	assert.Nil(t, body.Previous)
}

func TestListCoursesBadParamsDegrade(t *testing.T) {
	h := newTestRouter(t, "https://catalog.example.org/")
	rec, body := get(t, h, "/api/v1/courses?page=abc&perpage=1000&secret=1&ordering=-secret&price__regex=x")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 5, body.Count)
	assert.Len(t, body.Results, 3, "page size clamps to the maximum")
	assert.Equal(t, "Algebra", body.Results[0]["title"], "default ordering applies")
	require.NotNil(t, body.Next)
	assert.Contains(t, *body.Next, "https://catalog.example.org/api/v1/courses?")
}

func TestListCoursesPastEnd(t *testing.T) {
	rec, body := get(t, newTestRouter(t, ""), "/api/v1/courses?page=50")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, body.Count)
	assert.NotNil(t, body.Results)
	assert.Empty(t, body.Results)
	assert.Nil(t, body.Next)
	require.NotNil(t, body.Previous)
	assert.Equal(t, "http://example.com/api/v1/courses?page=3", *body.Previous)
	assert.Contains(t, rec.Body.String(), `"results":[]`)
}

func TestGetCourseEndpoint(t *testing.T) {
	h := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/courses/2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Botany", body["title"])

	for _, id := range []string{"99", "abc", "-1"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/courses/%s", id), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, "id %s", id)
	}
}

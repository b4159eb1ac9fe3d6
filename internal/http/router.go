package httpx

import (
	"net/http"

	"catalog/internal/config"
	"catalog/internal/http/handlers"
	middlewarex "catalog/internal/http/middleware"
	"catalog/internal/services/catalog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config         config.Cfg
	CatalogService *catalog.Service
}

// NewRouter creates the HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middlewarex.Logging(log.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middlewarex.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/courses", handlers.ListCourses(deps.CatalogService, deps.Config.App.BaseURL))
		r.Get("/courses/{id}", handlers.GetCourse(deps.CatalogService))
	})

	return r
}

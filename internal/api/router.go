package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Procure/internal/hermes"
	"github.com/MikeSquared-Agency/Procure/internal/metrics"
	"github.com/MikeSquared-Agency/Procure/internal/scoring"
	"github.com/MikeSquared-Agency/Procure/internal/session"
)

// Deps bundles what the HTTP layer needs. Hermes and Metrics may be nil.
type Deps struct {
	Scorer    *scoring.Scorer
	Sessions  *session.Manager
	Hermes    hermes.Client
	Metrics   *metrics.Collectors
	RateLimit int
	Logger    *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(d.Logger))
	if d.RateLimit > 0 {
		r.Use(RateLimitMiddleware(d.RateLimit))
	}

	catalog := NewCatalogHandler(d.Scorer)
	evaluate := NewEvaluateHandler(d.Scorer, d.Metrics)
	sessions := NewSessionsHandler(d.Sessions, d.Hermes, d.Metrics, d.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/criteria", catalog.Criteria)
		r.Get("/profiles", catalog.Profiles)
		r.Post("/evaluate", evaluate.Evaluate)

		r.Post("/sessions", sessions.Create)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessions.Get)
			r.Delete("/", sessions.Delete)
			r.Put("/suppliers", sessions.Resize)
			r.Patch("/suppliers/{index}", sessions.UpdateSupplier)
			r.Put("/suppliers/{index}/scores/{criterion}", sessions.SetScore)
			r.Put("/context", sessions.SelectContext)
			r.Get("/matrix", sessions.Matrix)
			r.Get("/export.csv", sessions.Export)
		})
	})

	return r
}

// NewMetricsRouter serves /health and the Prometheus scrape endpoint for g.
func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/livebetter-hq/livebetter/internal/cache"
	"github.com/livebetter-hq/livebetter/internal/parser"
	"github.com/livebetter-hq/livebetter/internal/scoring"
	"github.com/livebetter-hq/livebetter/internal/store"
)

func NewRouter(s store.Store, c cache.Cache, ranker *scoring.Ranker, p *parser.Parser, cacheTTL time.Duration, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	rank := NewRankHandler(ranker)
	metros := NewMetrosHandler(s, c, cacheTTL, logger)
	health := NewHealthHandler(s, c)
	parse := NewParseHandler(p)
	admin := NewAdminHandler(c, logger)

	r.Get("/", health.Root)
	r.Get("/health", health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/rank", rank.Rank)
		r.Post("/metros/batch", metros.Batch)
		r.Post("/parse-preferences", parse.Parse)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Post("/admin/cache/invalidate", admin.InvalidateCache)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

package api

import (
	"net/http"

	"github.com/livebetter-hq/livebetter/internal/cache"
	"github.com/livebetter-hq/livebetter/internal/store"
)

const Version = "1.0.0"

type HealthHandler struct {
	store store.Store
	cache cache.Cache
}

func NewHealthHandler(s store.Store, c cache.Cache) *HealthHandler {
	return &HealthHandler{store: s, cache: c}
}

type HealthResponse struct {
	Status      string       `json:"status"`
	Version     string       `json:"version"`
	MetrosCount int          `json:"metros_count,omitempty"`
	Database    store.Health `json:"database"`
	Cache       cache.Health `json:"cache"`
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "LiveBetter API",
		"version": Version,
		"health":  "/health",
	})
}

// Health handles GET /health. The data source decides the overall status; the
// cache is best-effort and only reported.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbHealth := h.store.HealthCheck(r.Context())
	cacheHealth := h.cache.HealthCheck(r.Context())

	resp := HealthResponse{
		Status:      dbHealth.Status,
		Version:     Version,
		MetrosCount: dbHealth.Metros,
		Database:    dbHealth,
		Cache:       cacheHealth,
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

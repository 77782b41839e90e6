package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/livebetter-hq/livebetter/internal/cache"
	"github.com/livebetter-hq/livebetter/internal/metrics"
	"github.com/livebetter-hq/livebetter/internal/store"
)

// MetrosCachePrefix namespaces batch-lookup responses separately from
// ranking responses.
const MetrosCachePrefix = "metros"

type MetrosHandler struct {
	store  store.Store
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewMetrosHandler(s store.Store, c cache.Cache, ttl time.Duration, logger *slog.Logger) *MetrosHandler {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MetrosHandler{store: s, cache: c, ttl: ttl, logger: logger}
}

type metroBatchRequest struct {
	MetroIDs []int64 `json:"metro_ids"`
}

// Batch handles POST /api/v1/metros/batch: raw cost/QOL records for up to 10
// metros, used by comparison UIs. No scores are recomputed here.
func (h *MetrosHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req metroBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.MetroIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no metro IDs provided"})
		return
	}
	if len(req.MetroIDs) > 10 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "maximum 10 metros allowed per request"})
		return
	}

	key := cache.Key(MetrosCachePrefix, batchCacheFields(req.MetroIDs))
	if data, err := h.cache.Get(r.Context(), key); err != nil {
		h.logger.Warn("cache get failed, treating as miss", "key", key, "error", err)
	} else if data != nil {
		metrics.CacheHits.WithLabelValues(MetrosCachePrefix).Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	metrics.CacheMisses.WithLabelValues(MetrosCachePrefix).Inc()

	metros, err := h.store.GetMetrosByIDs(r.Context(), req.MetroIDs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if len(metros) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no metros found with provided IDs"})
		return
	}

	if data, err := json.Marshal(metros); err == nil {
		if err := h.cache.Set(r.Context(), key, data, h.ttl); err != nil {
			h.logger.Warn("cache set failed", "key", key, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, metros)
}

func batchCacheFields(ids []int64) map[string]string {
	fields := make(map[string]string, len(ids))
	for _, id := range ids {
		fields["id_"+strconv.FormatInt(id, 10)] = "1"
	}
	return fields
}

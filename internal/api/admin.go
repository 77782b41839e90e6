package api

import (
	"log/slog"
	"net/http"

	"github.com/livebetter-hq/livebetter/internal/cache"
)

type AdminHandler struct {
	cache  cache.Cache
	logger *slog.Logger
}

func NewAdminHandler(c cache.Cache, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{cache: c, logger: logger}
}

// InvalidateCache handles POST /api/v1/admin/cache/invalidate, flushing every
// cached response. Used after out-of-band data reloads.
func (h *AdminHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.cache.DeletePattern(r.Context(), cache.Namespace+":*")
	if err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cache invalidation failed"})
		return
	}
	h.logger.Info("cache invalidated", "deleted", deleted)
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/livebetter-hq/livebetter/internal/errs"
	"github.com/livebetter-hq/livebetter/internal/scoring"
)

type RankHandler struct {
	ranker *scoring.Ranker
}

func NewRankHandler(ranker *scoring.Ranker) *RankHandler {
	return &RankHandler{ranker: ranker}
}

// Rank handles POST /api/v1/rank.
func (h *RankHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req scoring.RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.ranker.Rank(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Anything without a
// kind is an internal failure and gets a generic message.
func writeError(w http.ResponseWriter, err error) {
	switch errs.KindOf(err) {
	case errs.KindInvalidInput:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errs.KindNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errs.KindUnavailable:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "upstream unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

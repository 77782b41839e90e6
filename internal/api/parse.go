package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/livebetter-hq/livebetter/internal/parser"
)

type ParseHandler struct {
	parser *parser.Parser
}

func NewParseHandler(p *parser.Parser) *ParseHandler {
	return &ParseHandler{parser: p}
}

type parseRequest struct {
	Text string `json:"text"`
}

// Parse handles POST /api/v1/parse-preferences: free text in, a fully
// defaulted RankRequest out.
func (h *ParseHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text required"})
		return
	}

	parsed, err := h.parser.Parse(r.Context(), req.Text)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, parsed)
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/footstats/standings-api/internal/models"
)

// IngestMatches handles POST /api/v1/ingest/matches
// @Summary Ingest Match Results
// @Description Accepts newline-separated JSON match rows
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param body body []models.MatchRow true "Matches"
// @Success 202 {object} map[string]int "Accepted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /ingest/matches [post]
func (h *Handler) IngestMatches(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	accepted := 0
	rejected := 0
	for i, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var row models.MatchRow
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			h.logger.Warnw("Failed to unmarshal match row", "line", i, "error", err)
			rejected++
			continue
		}

		if err := h.validator.Struct(&row); err != nil {
			h.logger.Warnw("Match row failed validation", "line", i, "error", err)
			rejected++
			continue
		}

		if !h.pool.Enqueue(&row) {
			h.logger.Warnw("Ingest queue rejected match row", "line", i)
			rejected++
			continue
		}
		accepted++
	}

	if accepted == 0 && rejected > 0 {
		h.jsonResponse(w, http.StatusBadRequest, map[string]int{
			"accepted": accepted,
			"rejected": rejected,
		})
		return
	}

	h.jsonResponse(w, http.StatusAccepted, map[string]int{
		"accepted": accepted,
		"rejected": rejected,
	})
}

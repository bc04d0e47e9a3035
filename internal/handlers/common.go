package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/footstats/standings-api/internal/standings"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres":   h.pg.Ping(ctx) == nil,
		"clickhouse": h.ch.Ping(ctx) == nil,
		"redis":      h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": h.pool.QueueDepth(),
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps the engine error taxonomy onto HTTP statuses.
// NoMatchesError keeps its valid-choices payload so callers can self-correct.
func (h *Handler) serviceError(w http.ResponseWriter, err error) {
	var noMatches *standings.NoMatchesError
	if errors.As(err, &noMatches) {
		h.jsonResponse(w, http.StatusNotFound, map[string]interface{}{
			"error":             noMatches.Error(),
			"league":            noMatches.League,
			"season":            noMatches.Season,
			"available_leagues": noMatches.Leagues,
			"available_seasons": noMatches.Seasons,
		})
		return
	}

	var invalid *standings.InvalidMatchError
	if errors.As(err, &invalid) {
		h.errorResponse(w, http.StatusBadRequest, invalid.Error())
		return
	}

	var empty *standings.EmptyStandingsError
	if errors.As(err, &empty) {
		h.errorResponse(w, http.StatusUnprocessableEntity, empty.Error())
		return
	}

	h.logger.Errorw("Unhandled service error", "error", err)
	h.errorResponse(w, http.StatusInternalServerError, "Internal error")
}

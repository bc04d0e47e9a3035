package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetLeagueTable returns the final standings table for one league+season
// @Summary League Table
// @Description Final standings sorted by points, goal difference and goals for
// @Tags Standings
// @Produce json
// @Param league path string true "League identifier"
// @Param season path string true "Season identifier"
// @Success 200 {array} models.TableRow
// @Failure 404 {object} map[string]string "Unknown league/season"
// @Router /leagues/{league}/seasons/{season}/table [get]
func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	league := chi.URLParam(r, "league")
	season := chi.URLParam(r, "season")

	table, err := h.table.GetTable(r.Context(), league, season)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"league": league,
		"season": season,
		"table":  table,
	})
}

// GetProgression returns the per-matchday rank progression for one season
// @Summary Rank Progression
// @Description Points/rank snapshots for both participants after every match
// @Tags Standings
// @Produce json
// @Param league path string true "League identifier"
// @Param season path string true "Season identifier"
// @Param team query string false "Restrict to one team"
// @Success 200 {array} models.ProgressionEntry
// @Failure 404 {object} map[string]string "Unknown league/season"
// @Router /leagues/{league}/seasons/{season}/progression [get]
func (h *Handler) GetProgression(w http.ResponseWriter, r *http.Request) {
	league := chi.URLParam(r, "league")
	season := chi.URLParam(r, "season")
	team := r.URL.Query().Get("team")

	progression, err := h.progression.GetProgression(r.Context(), league, season, team)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"league":      league,
		"season":      season,
		"team":        team,
		"progression": progression,
	})
}

// GetComparison returns the cross-league comparison table
// @Summary League Comparison
// @Description Per-league means of goals, xG, fouls, cards, market value and age
// @Tags Comparison
// @Produce json
// @Success 200 {array} models.LeagueComparison
// @Router /comparison [get]
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	comparison, err := h.comparison.GetComparison(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"leagues": comparison,
	})
}

// GetCatalog lists the loaded leagues and their seasons
// @Summary League Catalog
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.LeagueSeasons
// @Router /leagues [get]
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.matches.Catalog(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"catalog": catalog,
	})
}

// GetDatasetInfo summarizes the loaded dataset
// @Summary Dataset Overview
// @Description Row count, loaded leagues/seasons and missing-value counts
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.DatasetInfo
// @Router /dataset [get]
func (h *Handler) GetDatasetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.dataset.GetOverview(r.Context())
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, info)
}

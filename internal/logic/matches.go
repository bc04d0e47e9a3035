package logic

import (
	"context"
	"fmt"
	"sort"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/footstats/standings-api/internal/models"
	"github.com/footstats/standings-api/internal/standings"
)

type matchService struct {
	ch driver.Conn
	pg PgPool
}

// NewMatchService builds the ClickHouse-backed match repository.
// Postgres supplies the league/season catalog maintained by the loader.
func NewMatchService(ch driver.Conn, pg PgPool) MatchService {
	return &matchService{ch: ch, pg: pg}
}

// MatchesByLeagueSeason returns the full match list for one league+season,
// ordered ascending by date. The ordering is load-bearing: the progression
// replay depends on it. A zero-row result returns a NoMatchesError carrying
// the sorted valid league and season identifiers.
func (s *matchService) MatchesByLeagueSeason(ctx context.Context, league, season string) ([]models.Match, error) {
	rows, err := s.ch.Query(ctx, `
		SELECT league, season, match_date, home_team, away_team, fthg, ftag
		FROM football_stats.matches
		WHERE league = ? AND season = ?
		ORDER BY match_date ASC
	`, league, season)
	if err != nil {
		return nil, fmt.Errorf("match query failed: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var m models.Match
		var hg, ag int32
		if err := rows.Scan(&m.League, &m.Season, &m.Date, &m.HomeTeam, &m.AwayTeam, &hg, &ag); err != nil {
			return nil, fmt.Errorf("match scan failed: %w", err)
		}
		m.HomeGoals = int(hg)
		m.AwayGoals = int(ag)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match row iteration failed: %w", err)
	}

	if len(matches) == 0 {
		return nil, s.noMatchesError(ctx, league, season)
	}

	return matches, nil
}

// Catalog lists every league with its loaded seasons, both sorted.
func (s *matchService) Catalog(ctx context.Context) ([]models.LeagueSeasons, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT l.name, s.name
		FROM leagues l
		JOIN seasons s ON s.league_id = l.id
		ORDER BY l.name, s.name
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer rows.Close()

	var catalog []models.LeagueSeasons
	for rows.Next() {
		var league, season string
		if err := rows.Scan(&league, &season); err != nil {
			return nil, fmt.Errorf("catalog scan failed: %w", err)
		}
		if n := len(catalog); n > 0 && catalog[n-1].League == league {
			catalog[n-1].Seasons = append(catalog[n-1].Seasons, season)
		} else {
			catalog = append(catalog, models.LeagueSeasons{League: league, Seasons: []string{season}})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog row iteration failed: %w", err)
	}

	return catalog, nil
}

// noMatchesError assembles the valid-choices payload for a miss. The lists
// come from the catalog so a typo in either dimension is easy to spot.
func (s *matchService) noMatchesError(ctx context.Context, league, season string) error {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		// Still surface the miss, just without the choices.
		return &standings.NoMatchesError{League: league, Season: season}
	}

	var leagues []string
	seasonSet := make(map[string]bool)
	for _, entry := range catalog {
		leagues = append(leagues, entry.League)
		for _, s := range entry.Seasons {
			seasonSet[s] = true
		}
	}
	seasons := make([]string, 0, len(seasonSet))
	for s := range seasonSet {
		seasons = append(seasons, s)
	}
	sort.Strings(leagues)
	sort.Strings(seasons)

	return &standings.NoMatchesError{
		League:  league,
		Season:  season,
		Leagues: leagues,
		Seasons: seasons,
	}
}

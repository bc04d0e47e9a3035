package logic

import (
	"context"
	"fmt"
	"sort"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"golang.org/x/sync/errgroup"

	"github.com/footstats/standings-api/internal/models"
)

type comparisonService struct {
	ch driver.Conn
}

// NewComparisonService builds the cross-league comparison aggregator.
// All metric families are plain grouped means over the match facts, so the
// four queries are independent and run concurrently.
func NewComparisonService(ch driver.Conn) ComparisonService {
	return &comparisonService{ch: ch}
}

type volumeRow struct {
	matches uint64
	teams   uint64
}

type goalsRow struct {
	home, away, total, xg float64
}

type disciplineRow struct {
	fouls, yellow, red float64
}

type marketRow struct {
	value, age float64
}

func (s *comparisonService) GetComparison(ctx context.Context) ([]models.LeagueComparison, error) {
	volume := make(map[string]volumeRow)
	goals := make(map[string]goalsRow)
	discipline := make(map[string]disciplineRow)
	market := make(map[string]marketRow)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.ch.Query(ctx, `
			SELECT league, count() AS matches,
			       uniqExact(arrayJoin([home_team, away_team])) AS teams
			FROM football_stats.matches
			GROUP BY league
		`)
		if err != nil {
			return fmt.Errorf("volume query failed: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var league string
			var v volumeRow
			if err := rows.Scan(&league, &v.matches, &v.teams); err != nil {
				return fmt.Errorf("volume scan failed: %w", err)
			}
			volume[league] = v
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := s.ch.Query(ctx, `
			SELECT league,
			       avg(fthg) AS home_goals,
			       avg(ftag) AS away_goals,
			       avg(fthg + ftag) AS total_goals,
			       ifNull(avg(xg_home + xg_away), 0) AS xg
			FROM football_stats.matches
			GROUP BY league
		`)
		if err != nil {
			return fmt.Errorf("goals query failed: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var league string
			var gr goalsRow
			if err := rows.Scan(&league, &gr.home, &gr.away, &gr.total, &gr.xg); err != nil {
				return fmt.Errorf("goals scan failed: %w", err)
			}
			goals[league] = gr
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := s.ch.Query(ctx, `
			SELECT league,
			       ifNull(avg(fouls_home + fouls_away), 0) AS fouls,
			       ifNull(avg(yellow_home + yellow_away), 0) AS yellows,
			       ifNull(avg(red_home + red_away), 0) AS reds
			FROM football_stats.matches
			GROUP BY league
		`)
		if err != nil {
			return fmt.Errorf("discipline query failed: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var league string
			var d disciplineRow
			if err := rows.Scan(&league, &d.fouls, &d.yellow, &d.red); err != nil {
				return fmt.Errorf("discipline scan failed: %w", err)
			}
			discipline[league] = d
		}
		return rows.Err()
	})

	g.Go(func() error {
		rows, err := s.ch.Query(ctx, `
			SELECT league,
			       ifNull(avg((market_value_home + market_value_away) / 2), 0) AS market_value,
			       ifNull(avg((age_home + age_away) / 2), 0) AS squad_age
			FROM football_stats.matches
			GROUP BY league
		`)
		if err != nil {
			return fmt.Errorf("market query failed: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var league string
			var m marketRow
			if err := rows.Scan(&league, &m.value, &m.age); err != nil {
				return fmt.Errorf("market scan failed: %w", err)
			}
			market[league] = m
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	comparison := make([]models.LeagueComparison, 0, len(volume))
	for league, v := range volume {
		row := models.LeagueComparison{
			League:  league,
			Matches: v.matches,
			Teams:   v.teams,
		}
		if gr, ok := goals[league]; ok {
			row.AvgHomeGoals = gr.home
			row.AvgAwayGoals = gr.away
			row.AvgTotalGoals = gr.total
			row.AvgXG = gr.xg
		}
		if d, ok := discipline[league]; ok {
			row.AvgFouls = d.fouls
			row.AvgYellowCards = d.yellow
			row.AvgRedCards = d.red
		}
		if m, ok := market[league]; ok {
			row.AvgMarketValue = m.value
			row.AvgSquadAge = m.age
		}
		comparison = append(comparison, row)
	}

	sort.Slice(comparison, func(i, j int) bool {
		return comparison[i].League < comparison[j].League
	})

	return comparison, nil
}

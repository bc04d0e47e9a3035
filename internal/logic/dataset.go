package logic

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/footstats/standings-api/internal/models"
)

type datasetService struct {
	ch driver.Conn
}

// NewDatasetService reports dataset shape: row counts, the loaded league and
// season identifiers, and per-column missing-value counts for the optional
// statistical columns.
func NewDatasetService(ch driver.Conn) DatasetService {
	return &datasetService{ch: ch}
}

// nullableColumns are the statistical columns that older seasons lack.
var nullableColumns = []string{
	"xg_home", "xg_away",
	"fouls_home", "fouls_away",
	"yellow_home", "yellow_away",
	"red_home", "red_away",
	"market_value_home", "market_value_away",
	"age_home", "age_away",
}

func (s *datasetService) GetOverview(ctx context.Context) (*models.DatasetInfo, error) {
	info := &models.DatasetInfo{
		MissingValues: make(map[string]uint64),
	}

	if err := s.ch.QueryRow(ctx,
		`SELECT count() FROM football_stats.matches`).Scan(&info.Rows); err != nil {
		return nil, fmt.Errorf("row count query failed: %w", err)
	}

	rows, err := s.ch.Query(ctx,
		`SELECT DISTINCT league FROM football_stats.matches ORDER BY league`)
	if err != nil {
		return nil, fmt.Errorf("league list query failed: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var league string
		if err := rows.Scan(&league); err != nil {
			return nil, fmt.Errorf("league scan failed: %w", err)
		}
		info.Leagues = append(info.Leagues, league)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	seasonRows, err := s.ch.Query(ctx,
		`SELECT DISTINCT season FROM football_stats.matches ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("season list query failed: %w", err)
	}
	defer seasonRows.Close()
	for seasonRows.Next() {
		var season string
		if err := seasonRows.Scan(&season); err != nil {
			return nil, fmt.Errorf("season scan failed: %w", err)
		}
		info.Seasons = append(info.Seasons, season)
	}
	if err := seasonRows.Err(); err != nil {
		return nil, err
	}

	for _, col := range nullableColumns {
		var missing uint64
		query := fmt.Sprintf(
			`SELECT countIf(isNull(%s)) FROM football_stats.matches`, col)
		if err := s.ch.QueryRow(ctx, query).Scan(&missing); err != nil {
			return nil, fmt.Errorf("missing-value query for %s failed: %w", col, err)
		}
		if missing > 0 {
			info.MissingValues[col] = missing
		}
	}

	return info, nil
}

package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/footstats/standings-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the interface for the Redis cache client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// MatchService is the match repository: ordered match access plus the
// league/season catalog used for no-matches diagnostics.
type MatchService interface {
	MatchesByLeagueSeason(ctx context.Context, league, season string) ([]models.Match, error)
	Catalog(ctx context.Context) ([]models.LeagueSeasons, error)
}

// TableService computes final standings tables.
type TableService interface {
	GetTable(ctx context.Context, league, season string) ([]models.TableRow, error)
}

// ProgressionService computes season-long rank progressions.
type ProgressionService interface {
	GetProgression(ctx context.Context, league, season, team string) ([]models.ProgressionEntry, error)
}

// ComparisonService computes the cross-league comparison table.
type ComparisonService interface {
	GetComparison(ctx context.Context) ([]models.LeagueComparison, error)
}

// DatasetService reports what is currently loaded.
type DatasetService interface {
	GetOverview(ctx context.Context) (*models.DatasetInfo, error)
}

package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/footstats/standings-api/internal/models"
	"github.com/footstats/standings-api/internal/standings"
)

type tableService struct {
	matches MatchService
	cache   RedisClient
	logger  *zap.SugaredLogger
	ttl     time.Duration
}

// NewTableService computes final league tables with a Redis read-through
// cache. Cache misses fall through to a fresh fold over the match store.
func NewTableService(matches MatchService, cache RedisClient, logger *zap.Logger, ttl time.Duration) TableService {
	return &tableService{
		matches: matches,
		cache:   cache,
		logger:  logger.Sugar(),
		ttl:     ttl,
	}
}

func tableCacheKey(league, season string) string {
	return "table:" + league + ":" + season
}

func (s *tableService) GetTable(ctx context.Context, league, season string) ([]models.TableRow, error) {
	key := tableCacheKey(league, season)

	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		var table []models.TableRow
		if err := json.Unmarshal([]byte(cached), &table); err == nil {
			return table, nil
		}
		s.logger.Warnw("Discarding undecodable cached table", "key", key)
	} else if err != redis.Nil {
		s.logger.Warnw("Table cache read failed", "key", key, "error", err)
	}

	matches, err := s.matches.MatchesByLeagueSeason(ctx, league, season)
	if err != nil {
		return nil, err
	}

	table, err := standings.BuildTable(matches)
	if err != nil {
		return nil, fmt.Errorf("building table for %s %s: %w", league, season, err)
	}

	if payload, err := json.Marshal(table); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.logger.Warnw("Table cache write failed", "key", key, "error", err)
		}
	}

	return table, nil
}

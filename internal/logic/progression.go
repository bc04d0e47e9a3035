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

type progressionService struct {
	matches MatchService
	cache   RedisClient
	logger  *zap.SugaredLogger
	ttl     time.Duration
}

// NewProgressionService computes per-matchday rank progressions with the same
// read-through cache shape as the table service. The cache holds the whole
// season; team filtering happens after the cache so one entry serves all teams.
func NewProgressionService(matches MatchService, cache RedisClient, logger *zap.Logger, ttl time.Duration) ProgressionService {
	return &progressionService{
		matches: matches,
		cache:   cache,
		logger:  logger.Sugar(),
		ttl:     ttl,
	}
}

func progressionCacheKey(league, season string) string {
	return "progression:" + league + ":" + season
}

func (s *progressionService) GetProgression(ctx context.Context, league, season, team string) ([]models.ProgressionEntry, error) {
	key := progressionCacheKey(league, season)

	var progression []models.ProgressionEntry

	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		if err := json.Unmarshal([]byte(cached), &progression); err != nil {
			s.logger.Warnw("Discarding undecodable cached progression", "key", key)
			progression = nil
		}
	} else if err != redis.Nil {
		s.logger.Warnw("Progression cache read failed", "key", key, "error", err)
	}

	if progression == nil {
		matches, err := s.matches.MatchesByLeagueSeason(ctx, league, season)
		if err != nil {
			return nil, err
		}

		progression, err = standings.TrackProgression(matches)
		if err != nil {
			return nil, fmt.Errorf("tracking progression for %s %s: %w", league, season, err)
		}

		if payload, err := json.Marshal(progression); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
				s.logger.Warnw("Progression cache write failed", "key", key, "error", err)
			}
		}
	}

	if team == "" {
		return progression, nil
	}

	filtered := make([]models.ProgressionEntry, 0, len(progression))
	for _, entry := range progression {
		if entry.Team == team {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

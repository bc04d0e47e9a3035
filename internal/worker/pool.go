// Package worker implements the buffered worker pool for async match ingestion.
// It decouples HTTP request handling from storage writes, providing:
// - Backpressure handling via load shedding
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/footstats/standings-api/internal/models"
)

// Prometheus metrics
var (
	matchesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "footstats_matches_ingested_total",
		Help: "Total number of match rows accepted into the queue",
	})

	matchesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "footstats_matches_processed_total",
		Help: "Total number of match rows written by workers",
	})

	matchesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "footstats_matches_failed_total",
		Help: "Total number of match rows that failed processing",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "footstats_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "footstats_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	matchesLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "footstats_matches_load_shed_total",
		Help: "Total number of match rows dropped due to load shedding",
	})
)

// CatalogStore is the slice of Postgres the pool needs for catalog upserts.
// *pgxpool.Pool satisfies it.
type CatalogStore interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CacheInvalidator drops computed tables for a league+season after new rows
// land. *redis.Client satisfies it.
type CacheInvalidator interface {
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Job represents a unit of work for the worker pool
type Job struct {
	Row       *models.MatchRow
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Catalog       CatalogStore
	Cache         CacheInvalidator
	Logger        *zap.Logger
}

// Pool manages a pool of workers for async match ingestion
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool, flushing pending batches
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds a match row to the queue. Returns false and sheds load when
// the queue is full or the pool is shutting down.
func (p *Pool) Enqueue(row *models.MatchRow) bool {
	job := Job{Row: row, Timestamp: time.Now()}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue match (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- job:
		matchesIngested.Inc()
		return true
	default:
		p.logger.Warn("Ingest queue full, dropping match row")
		matchesLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			matchesFailed.Add(float64(len(batch)))
		} else {
			matchesProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}

			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch writes one batch of match rows to ClickHouse, then runs the
// side effects: catalog upserts in Postgres and cache invalidation in Redis.
func (p *Pool) processBatch(batch []Job) error {
	ctx := context.Background()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO football_stats.matches (
			league, season, match_date, home_team, away_team, fthg, ftag,
			xg_home, xg_away, fouls_home, fouls_away,
			yellow_home, yellow_away, red_home, red_away,
			market_value_home, market_value_away, age_home, age_away,
			loaded_at
		)
	`)
	if err != nil {
		return err
	}

	for _, job := range batch {
		row := job.Row

		date, err := row.ParsedDate()
		if err != nil {
			// Validation upstream pins the format; a failure here is a bug.
			p.logger.Warnw("Skipping match row with unparseable date", "date", row.Date, "error", err)
			continue
		}

		if err := chBatch.Append(
			row.League,
			row.Season,
			date,
			row.HomeTeam,
			row.AwayTeam,
			int32(row.HomeGoals),
			int32(row.AwayGoals),
			row.XGHome,
			row.XGAway,
			row.FoulsHome,
			row.FoulsAway,
			row.YellowHome,
			row.YellowAway,
			row.RedHome,
			row.RedAway,
			row.MarketValueHome,
			row.MarketValueAway,
			row.AgeHome,
			row.AgeAway,
			job.Timestamp,
		); err != nil {
			p.logger.Warnw("Failed to append match to batch", "error", err,
				"league", row.League, "season", row.Season)
			continue
		}
	}

	if err := chBatch.Send(); err != nil {
		p.logger.Errorw("Failed to send batch to ClickHouse", "error", err, "batchSize", len(batch))
		return err
	}

	// Must copy batch because the slice is reused in the worker loop
	batchCopy := make([]Job, len(batch))
	copy(batchCopy, batch)
	go p.processBatchSideEffects(ctx, batchCopy)

	return nil
}

// processBatchSideEffects keeps the catalog current and drops stale caches.
func (p *Pool) processBatchSideEffects(ctx context.Context, batch []Job) {
	type pair struct{ league, season string }
	seen := make(map[pair]bool)
	for _, job := range batch {
		seen[pair{job.Row.League, job.Row.Season}] = true
	}

	for lp := range seen {
		if p.config.Catalog != nil {
			if _, err := p.config.Catalog.Exec(ctx, `
				WITH league AS (
					INSERT INTO leagues (name) VALUES ($1)
					ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
					RETURNING id
				)
				INSERT INTO seasons (league_id, name)
				SELECT id, $2 FROM league
				ON CONFLICT (league_id, name) DO NOTHING
			`, lp.league, lp.season); err != nil {
				p.logger.Warnw("Catalog upsert failed", "league", lp.league, "season", lp.season, "error", err)
			}
		}

		if p.config.Cache != nil {
			keys := []string{
				"table:" + lp.league + ":" + lp.season,
				"progression:" + lp.league + ":" + lp.season,
			}
			if err := p.config.Cache.Del(ctx, keys...).Err(); err != nil {
				p.logger.Warnw("Cache invalidation failed", "keys", keys, "error", err)
			}
		}
	}
}

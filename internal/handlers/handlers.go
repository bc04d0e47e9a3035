package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/footstats/standings-api/internal/logic"
	"github.com/footstats/standings-api/internal/models"
)

// MaxBodySize limits the size of ingest request bodies to 1MB
const MaxBodySize = 1048576

// IngestQueue defines the interface for the match ingestion worker pool
type IngestQueue interface {
	Enqueue(row *models.MatchRow) bool
	QueueDepth() int
}

type Config struct {
	WorkerPool IngestQueue
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Matches     logic.MatchService
	Table       logic.TableService
	Progression logic.ProgressionService
	Comparison  logic.ComparisonService
	Dataset     logic.DatasetService
}

type Handler struct {
	pool        IngestQueue
	pg          *pgxpool.Pool
	ch          driver.Conn
	redis       *redis.Client
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	matches     logic.MatchService
	table       logic.TableService
	progression logic.ProgressionService
	comparison  logic.ComparisonService
	dataset     logic.DatasetService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:        cfg.WorkerPool,
		pg:          cfg.Postgres,
		ch:          cfg.ClickHouse,
		redis:       cfg.Redis,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
		matches:     cfg.Matches,
		table:       cfg.Table,
		progression: cfg.Progression,
		comparison:  cfg.Comparison,
		dataset:     cfg.Dataset,
	}
}

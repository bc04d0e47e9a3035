package logic

import (
	"context"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/footstats/standings-api/internal/models"
)

// MockCHConn implements driver.Conn for testing
type MockCHConn struct {
	driver.Conn
	QueryFunc    func(ctx context.Context, query string, args ...interface{}) (driver.Rows, error)
	QueryRowFunc func(ctx context.Context, query string, args ...interface{}) driver.Row
}

func (m *MockCHConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query, args...)
	}
	return &MockCHRows{}, nil
}

func (m *MockCHConn) QueryRow(ctx context.Context, query string, args ...interface{}) driver.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, query, args...)
	}
	return &MockCHRow{}
}

// MockCHRows implements driver.Rows over an in-memory value grid
type MockCHRows struct {
	driver.Rows
	Data  [][]interface{}
	Index int
}

func (m *MockCHRows) Next() bool {
	m.Index++
	return m.Index <= len(m.Data)
}

func (m *MockCHRows) Scan(dest ...interface{}) error {
	if m.Index > len(m.Data) {
		return nil
	}
	row := m.Data[m.Index-1]
	for i, val := range row {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

func (m *MockCHRows) Close() error { return nil }
func (m *MockCHRows) Err() error   { return nil }

type MockCHRow struct {
	ScanFunc func(dest ...interface{}) error
}

func (m *MockCHRow) Scan(dest ...interface{}) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

func (m *MockCHRow) ScanStruct(dest interface{}) error { return nil }
func (m *MockCHRow) Err() error                        { return nil }

func setDest(dest interface{}, val interface{}) {
	v := reflect.ValueOf(dest).Elem()
	valV := reflect.ValueOf(val)
	if valV.Type().ConvertibleTo(v.Type()) {
		v.Set(valV.Convert(v.Type()))
	} else {
		v.Set(valV)
	}
}

// MockPgPool implements PgPool for testing
type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockPgRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockPgRow{}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

// MockPgRows implements the subset of pgx.Rows the services touch
type MockPgRows struct {
	pgx.Rows
	Data  [][]interface{}
	Index int
}

func (m *MockPgRows) Next() bool {
	m.Index++
	return m.Index <= len(m.Data)
}

func (m *MockPgRows) Scan(dest ...any) error {
	if m.Index > len(m.Data) {
		return nil
	}
	row := m.Data[m.Index-1]
	for i, val := range row {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

func (m *MockPgRows) Close()     {}
func (m *MockPgRows) Err() error { return nil }

type MockPgRow struct {
	ScanFunc func(dest ...any) error
}

func (m *MockPgRow) Scan(dest ...any) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

// MockRedis implements RedisClient as a plain map store
type MockRedis struct {
	Store map[string]string
	Sets  int
	Dels  int
}

func NewMockRedis() *MockRedis {
	return &MockRedis{Store: make(map[string]string)}
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if val, ok := m.Store[key]; ok {
		return redis.NewStringResult(val, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.Sets++
	switch v := value.(type) {
	case string:
		m.Store[key] = v
	case []byte:
		m.Store[key] = string(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *MockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.Dels += len(keys)
	for _, key := range keys {
		delete(m.Store, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

// MockMatchService feeds canned matches to the table/progression services
type MockMatchService struct {
	Matches []models.Match
	Err     error
	Calls   int
}

func (m *MockMatchService) MatchesByLeagueSeason(ctx context.Context, league, season string) ([]models.Match, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Matches, nil
}

func (m *MockMatchService) Catalog(ctx context.Context) ([]models.LeagueSeasons, error) {
	return nil, nil
}

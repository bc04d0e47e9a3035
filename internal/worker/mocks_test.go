package worker

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// MockBatch implements driver.Batch, recording appended rows
type MockBatch struct {
	driver.Batch
	mu       sync.Mutex
	Appended [][]interface{}
	Sent     bool
	SendErr  error
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := make([]interface{}, len(v))
	copy(row, v)
	m.Appended = append(m.Appended, row)
	return nil
}

func (m *MockBatch) Send() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = true
	return m.SendErr
}

// MockCHConn implements driver.Conn, handing out a shared MockBatch
type MockCHConn struct {
	driver.Conn
	mu      sync.Mutex
	Batches []*MockBatch
	SendErr error
}

func (m *MockCHConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	batch := &MockBatch{SendErr: m.SendErr}
	m.Batches = append(m.Batches, batch)
	return batch, nil
}

func (m *MockCHConn) AppendedRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, b := range m.Batches {
		total += len(b.Appended)
	}
	return total
}

// MockCatalog implements CatalogStore, counting upserts
type MockCatalog struct {
	mu    sync.Mutex
	Execs []string
}

func (m *MockCatalog) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Execs = append(m.Execs, sql)
	return pgconn.CommandTag{}, nil
}

func (m *MockCatalog) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Execs)
}

// MockCache implements CacheInvalidator, recording deleted keys
type MockCache struct {
	mu      sync.Mutex
	Deleted []string
}

func (m *MockCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (m *MockCache) DeletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Deleted))
	copy(out, m.Deleted)
	return out
}

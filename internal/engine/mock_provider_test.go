package engine

import (
	"context"
	"errors"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/client"
)

// MockProvider implements client.StatsProvider for testing.
type MockProvider struct {
	DatabasesFn   func(ctx context.Context) ([]client.DatabaseInfo, error)
	CollectionsFn func(ctx context.Context, db string) ([]client.CollectionInfo, error)
	IndexesFn     func(ctx context.Context, db, coll string) ([]client.IndexInfo, error)
	FetchStatsFn  func(ctx context.Context, db, coll string, opts client.FetchOptions) (*client.CollStats, error)

	mu         sync.Mutex
	fetchCalls []string
	fetchOpts  []client.FetchOptions
}

func (m *MockProvider) ListDatabases(ctx context.Context) ([]client.DatabaseInfo, error) {
	if m.DatabasesFn != nil {
		return m.DatabasesFn(ctx)
	}
	return []client.DatabaseInfo{{Name: "shop"}}, nil
}

func (m *MockProvider) ListCollections(ctx context.Context, db string) ([]client.CollectionInfo, error) {
	if m.CollectionsFn != nil {
		return m.CollectionsFn(ctx, db)
	}
	return []client.CollectionInfo{{Name: "orders", Type: "collection"}}, nil
}

func (m *MockProvider) ListIndexes(ctx context.Context, db, coll string) ([]client.IndexInfo, error) {
	if m.IndexesFn != nil {
		return m.IndexesFn(ctx, db, coll)
	}
	return []client.IndexInfo{{Name: "_id_"}}, nil
}

func (m *MockProvider) FetchStats(ctx context.Context, db, coll string, opts client.FetchOptions) (*client.CollStats, error) {
	m.mu.Lock()
	m.fetchCalls = append(m.fetchCalls, db+"."+coll)
	m.fetchOpts = append(m.fetchOpts, opts)
	m.mu.Unlock()

	if m.FetchStatsFn != nil {
		return m.FetchStatsFn(ctx, db, coll, opts)
	}
	return &client.CollStats{}, nil
}

// FetchCalls returns the namespaces passed to FetchStats so far.
func (m *MockProvider) FetchCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.fetchCalls))
	copy(out, m.fetchCalls)
	return out
}

var errMockFailure = errors.New("mock failure")

// quietLogger discards all output.
func quietLogger() log.FieldLogger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func f64(v float64) *float64 { return &v }

// counters builds cache counters from raw byte and page values.
func counters(inCache, read, written, pages float64) *client.CacheCounters {
	return &client.CacheCounters{
		BytesCurrentlyCached:  f64(inCache),
		BytesReadIntoCache:    f64(read),
		BytesWrittenFromCache: f64(written),
		PagesRequested:        f64(pages),
	}
}

// statsWith builds a collStats payload with collection counters and one
// entry per index.
func statsWith(size, indexSize float64, coll *client.CacheCounters, indexes map[string]*client.CacheCounters, indexSizes map[string]float64) *client.CollStats {
	s := &client.CollStats{
		Size:           size,
		TotalIndexSize: indexSize,
		IndexSizes:     indexSizes,
		WiredTiger:     &client.EngineStats{Cache: coll},
		IndexDetails:   map[string]client.EngineStats{},
	}
	for name, c := range indexes {
		s.IndexDetails[name] = client.EngineStats{Cache: c}
	}
	return s
}

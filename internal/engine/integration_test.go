//go:build integration

package engine_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/client"
	"github.com/filipemansano-mongodb/MongoCacheView/internal/engine"
)

// mongoClient creates a MongoClient from $MONGO_URI or skips the test if unset.
func mongoClient(t *testing.T) *client.MongoClient {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping integration test")
	}
	c, err := client.NewMongoClient(client.ClientConfig{
		URI:            uri,
		ConnectTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	require.NoError(t, c.Ping(context.Background()))
	return c
}

func discardLogger() log.FieldLogger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

// TestLiveCluster_CatalogAndTwoCycles builds the catalog from $MONGO_URI and
// runs two sampling cycles 2s apart.
func TestLiveCluster_CatalogAndTwoCycles(t *testing.T) {
	c := mongoClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	policy := engine.CatalogPolicy{
		ExcludedDatabases: []string{"local", "config", "admin"},
		ExcludedPrefix:    "__realm",
	}
	cat, err := engine.BuildCatalog(ctx, c, policy, discardLogger())
	require.NoError(t, err)

	s := engine.NewSampler(c, cat, engine.SamplerConfig{
		Scale:        1_000_000,
		FetchTimeout: 10 * time.Second,
		Concurrency:  8,
	}, discardLogger())

	first := s.Sample(ctx, time.Minute)
	assert.Equal(t, cat.Len(), first.Stats.Collections)

	time.Sleep(2 * time.Second)

	second := s.Sample(ctx, 2*time.Second)
	for _, r := range second.Rows {
		assert.Greater(t, r.Size, int64(0), r.Name)
		assert.GreaterOrEqual(t, r.ReadRate, int64(0), r.Name)
		assert.GreaterOrEqual(t, r.WriteRate, int64(0), r.Name)
		assert.GreaterOrEqual(t, r.PageUseRate, int64(0), r.Name)
	}
}

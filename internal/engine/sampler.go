package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/client"
	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

// Fetch latency histogram bounds, in microseconds.
const (
	histMin    = 1
	histMax    = 600_000_000 // 10 minutes
	histSigFig = 3
)

// SamplerConfig holds the per-cycle sampling parameters.
type SamplerConfig struct {
	Scale        int64
	FetchTimeout time.Duration
	Concurrency  int
}

// CycleStats summarises one cycle's fetches.
type CycleStats struct {
	Collections int
	Failed      int
	FetchP50    time.Duration
	FetchP99    time.Duration
	FetchMax    time.Duration
}

// Cycle is the result of one polling pass over the catalog.
type Cycle struct {
	Number   int
	Window   time.Duration      // rate denominator
	Rows     []model.DisplayRow // emission order
	Failures []EntityError
	Stats    CycleStats
}

// Sampler runs polling cycles over a catalog. It is the only writer of the
// catalog's counter state and must not run two cycles concurrently.
type Sampler struct {
	provider client.StatsProvider
	catalog  *model.Catalog
	cfg      SamplerConfig
	log      log.FieldLogger
	cycles   int
}

type fetchResult struct {
	stats   *client.CollStats
	err     error
	latency time.Duration
}

// NewSampler returns a Sampler over cat. Zero config fields take defaults.
func NewSampler(p client.StatsProvider, cat *model.Catalog, cfg SamplerConfig, logger log.FieldLogger) *Sampler {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 16
	}
	return &Sampler{
		provider: p,
		catalog:  cat,
		cfg:      cfg,
		log:      logger,
	}
}

// Sample fetches statistics for every collection concurrently, then decodes
// and applies them in catalog order. Rates are per second over window, the
// time since the previous cycle. A failed entity is skipped and keeps its
// previous state.
func (s *Sampler) Sample(ctx context.Context, window time.Duration) Cycle {
	s.cycles++
	results := s.fetchAll(ctx)

	cycle := Cycle{Number: s.cycles, Window: window}
	hist := hdrhistogram.New(histMin, histMax, histSigFig)

	for i := range s.catalog.Collections {
		coll := &s.catalog.Collections[i]
		res := results[i]
		recordLatency(hist, res.latency)

		if res.err == nil && res.stats == nil {
			res.err = fmt.Errorf("%w: empty response", ErrInvalidStatsPayload)
		}
		if res.err != nil {
			cycle.Failures = append(cycle.Failures, s.fail(cycle.Number, coll.Namespace(), res.err))
			continue
		}

		snap, err := DecodeCacheStats(res.stats.CollectionCache(), coll.State, s.cfg.Scale, window)
		if err != nil {
			cycle.Failures = append(cycle.Failures, s.fail(cycle.Number, coll.Namespace(), err))
		} else {
			coll.State = snap.State()
			if size := res.stats.TotalSize(); size > 0 {
				cycle.Rows = append(cycle.Rows, newRow(coll.Namespace(), model.KindCollection, size, snap))
			}
		}

		for j := range coll.Indexes {
			ix := &coll.Indexes[j]
			name := coll.IndexRowName(ix.Name)

			snap, err := DecodeCacheStats(res.stats.IndexCache(ix.Name), ix.State, s.cfg.Scale, window)
			if err != nil {
				cycle.Failures = append(cycle.Failures, s.fail(cycle.Number, name, err))
				continue
			}
			ix.State = snap.State()
			if size := res.stats.IndexSizes[ix.Name]; size > 0 {
				cycle.Rows = append(cycle.Rows, newRow(name, model.KindIndex, size, snap))
			}
		}
	}

	cycle.Stats = CycleStats{
		Collections: len(s.catalog.Collections),
		Failed:      len(cycle.Failures),
		FetchP50:    time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond,
		FetchP99:    time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond,
		FetchMax:    time.Duration(hist.Max()) * time.Microsecond,
	}

	s.log.WithFields(log.Fields{
		"cycle":  cycle.Number,
		"rows":   len(cycle.Rows),
		"failed": cycle.Stats.Failed,
		"p99":    cycle.Stats.FetchP99,
	}).Debug("cycle sampled")
	return cycle
}

// fetchAll issues one collStats request per collection with bounded
// concurrency and waits for all of them. Failures are kept per slot so one
// failed fetch never cancels its siblings.
func (s *Sampler) fetchAll(ctx context.Context) []fetchResult {
	results := make([]fetchResult, len(s.catalog.Collections))
	opts := client.FetchOptions{Scale: s.cfg.Scale, IndexDetails: true}

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	for i := range s.catalog.Collections {
		db := s.catalog.Collections[i].Database
		coll := s.catalog.Collections[i].Collection
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
			defer cancel()

			start := time.Now()
			stats, err := s.provider.FetchStats(fctx, db, coll, opts)
			results[i] = fetchResult{stats: stats, err: err, latency: time.Since(start)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Sampler) fail(cycle int, entity string, err error) EntityError {
	if !errors.Is(err, ErrFetch) {
		err = fmt.Errorf("%w: %w", ErrFetch, err)
	}
	s.log.WithFields(log.Fields{
		"cycle": cycle,
		"ns":    entity,
	}).WithError(err).Warn("skipping entity for this cycle")
	return EntityError{Entity: entity, Err: err}
}

func recordLatency(h *hdrhistogram.Histogram, d time.Duration) {
	us := d.Microseconds()
	if us < histMin {
		us = histMin
	}
	if us > histMax {
		us = histMax
	}
	_ = h.RecordValue(us)
}

// newRow projects a snapshot into a display row. size is in scale units.
func newRow(name string, kind model.RowKind, size float64, snap model.Snapshot) model.DisplayRow {
	return model.DisplayRow{
		Name:          name,
		Kind:          kind,
		Size:          int64(math.Floor(size)),
		CachedMB:      snap.InCache,
		CachedPercent: percentOf(snap.InCache, size),
		DeltaRate:     snap.Delta,
		ReadRate:      snap.ReadRate,
		WriteRate:     snap.WriteRate,
		PageUseRate:   snap.PageUseRate,
		Reset:         snap.Reset,
	}
}

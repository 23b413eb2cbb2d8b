package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/client"
	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

// Intervals shorter than this produce zero rates.
const minTimeDiffSeconds = 1.0

// DecodeCacheStats derives a Snapshot from one entity's raw cache counters and
// its previous state. Byte counters are divided by scale and floored; pages
// are floored as-is. Each rate is floor((current - previous) / interval).
//
// A decrease of any cumulative counter (read, written, pages) means the
// engine state was reset; all rates are then zero and Reset is set. The
// residency delta is otherwise signed, since eviction shrinks the cache.
//
// An entity that was never sampled has an all-zero previous state, so its
// first rates are measured against zero and overstate real throughput for
// exactly one cycle.
func DecodeCacheStats(c *client.CacheCounters, prev model.CounterState, scale int64, interval time.Duration) (model.Snapshot, error) {
	if err := validateCounters(c); err != nil {
		return model.Snapshot{}, err
	}
	if scale <= 0 {
		scale = 1
	}

	snap := model.Snapshot{
		InCache:    floorDiv(*c.BytesCurrentlyCached, scale),
		CacheRead:  floorDiv(*c.BytesReadIntoCache, scale),
		CacheWrite: floorDiv(*c.BytesWrittenFromCache, scale),
		PagesUsed:  int64(math.Floor(*c.PagesRequested)),
	}

	snap.Reset = snap.CacheRead < prev.BytesRead ||
		snap.CacheWrite < prev.BytesWritten ||
		snap.PagesUsed < prev.PagesRequested

	secs := interval.Seconds()
	if snap.Reset || secs < minTimeDiffSeconds {
		return snap, nil
	}

	snap.Delta = rate(snap.InCache, prev.BytesInCache, secs)
	snap.ReadRate = rate(snap.CacheRead, prev.BytesRead, secs)
	snap.WriteRate = rate(snap.CacheWrite, prev.BytesWritten, secs)
	snap.PageUseRate = rate(snap.PagesUsed, prev.PagesRequested, secs)
	return snap, nil
}

func validateCounters(c *client.CacheCounters) error {
	if c == nil {
		return fmt.Errorf("%w: cache section missing", ErrInvalidStatsPayload)
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"bytes currently in the cache", c.BytesCurrentlyCached},
		{"bytes read into cache", c.BytesReadIntoCache},
		{"bytes written from cache", c.BytesWrittenFromCache},
		{"pages requested from the cache", c.PagesRequested},
	} {
		if f.v == nil {
			return fmt.Errorf("%w: %q missing", ErrInvalidStatsPayload, f.name)
		}
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			return fmt.Errorf("%w: %q is not finite", ErrInvalidStatsPayload, f.name)
		}
	}
	return nil
}

// floorDiv returns floor(v / scale).
func floorDiv(v float64, scale int64) int64 {
	return int64(math.Floor(v / float64(scale)))
}

// rate returns floor((curr - prev) / secs).
func rate(curr, prev int64, secs float64) int64 {
	return int64(math.Floor(float64(curr-prev) / secs))
}

// percentOf returns floor(part / whole * 100), or 0 when whole is not positive.
func percentOf(part int64, whole float64) int64 {
	if whole <= 0 {
		return 0
	}
	return int64(math.Floor(float64(part) / whole * 100))
}

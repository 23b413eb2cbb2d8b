package model

// Snapshot is the derived metrics record for one entity in one cycle.
// Absolute fields are floored scale units (pages are raw counts); rate fields
// are per-second values over the sampling interval.
type Snapshot struct {
	InCache    int64
	CacheRead  int64
	CacheWrite int64
	PagesUsed  int64

	Delta       int64 // change in cache residency, may be negative on eviction
	ReadRate    int64
	WriteRate   int64
	PageUseRate int64

	// Reset is set when a cumulative counter went backwards since the previous
	// sample. All rates are zero when Reset is true.
	Reset bool
}

// State returns the absolute values of s as the entity's next stored state.
func (s Snapshot) State() CounterState {
	return CounterState{
		BytesInCache:   s.InCache,
		BytesRead:      s.CacheRead,
		BytesWritten:   s.CacheWrite,
		PagesRequested: s.PagesUsed,
	}
}

package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/format"
	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

// DefaultRowsToShow bounds the rendered table when no limit is configured.
const DefaultRowsToShow = 30

// Sink is the render collaborator. Each cycle calls Clear, RenderTable once,
// then PrintLine for each status line.
type Sink interface {
	Clear() error
	RenderTable(rows []model.DisplayRow) error
	PrintLine(text string) error
}

// Rank returns a copy of rows sorted by CachedMB descending, ties kept in
// emission order, truncated to at most limit entries. limit <= 0 means
// DefaultRowsToShow.
func Rank(rows []model.DisplayRow, limit int) []model.DisplayRow {
	if limit <= 0 {
		limit = DefaultRowsToShow
	}
	out := make([]model.DisplayRow, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CachedMB > out[j].CachedMB
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Present hands ranked rows and the two status lines to sink. The first sink
// error stops the frame and is returned wrapped in ErrRender.
func Present(sink Sink, ranked []model.DisplayRow, cycle Cycle, now time.Time, interval time.Duration) error {
	if err := sink.Clear(); err != nil {
		return fmt.Errorf("%w: clear: %w", ErrRender, err)
	}
	if err := sink.RenderTable(ranked); err != nil {
		return fmt.Errorf("%w: table: %w", ErrRender, err)
	}
	for _, line := range StatusLines(cycle, now, interval) {
		if err := sink.PrintLine(line); err != nil {
			return fmt.Errorf("%w: status: %w", ErrRender, err)
		}
	}
	return nil
}

// StatusLines returns the last-update and next-update lines for a cycle.
func StatusLines(cycle Cycle, now time.Time, interval time.Duration) []string {
	last := fmt.Sprintf("Last updated at: %s  (%s collections, %s rows, %d failed, fetch p50 %s p99 %s)",
		now.Format("15:04:05"),
		format.FormatNumber(int64(cycle.Stats.Collections)),
		format.FormatNumber(int64(len(cycle.Rows))),
		cycle.Stats.Failed,
		format.FormatLatency(cycle.Stats.FetchP50),
		format.FormatLatency(cycle.Stats.FetchP99),
	)
	next := "Next update at: " + now.Add(interval).Format("15:04:05")
	return []string{last, next}
}

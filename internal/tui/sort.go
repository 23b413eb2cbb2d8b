package tui

import (
	"sort"
	"strings"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

// Cache table column indices.
const (
	colName = iota
	colSize
	colCached
	colPercent
	colDelta
	colRead
	colWrite
	colPages
)

// numericValue returns the sortable value of a numeric column.
func numericValue(r model.DisplayRow, col int) int64 {
	switch col {
	case colSize:
		return r.Size
	case colCached:
		return r.CachedMB
	case colPercent:
		return r.CachedPercent
	case colDelta:
		return r.DeltaRate
	case colRead:
		return r.ReadRate
	case colWrite:
		return r.WriteRate
	case colPages:
		return r.PageUseRate
	default:
		return 0
	}
}

// sortCacheRows returns a sorted copy of rows. col -1 keeps the ranked
// order. Ties are broken by Name ascending regardless of direction.
func sortCacheRows(rows []model.DisplayRow, col int, desc bool) []model.DisplayRow {
	out := make([]model.DisplayRow, len(rows))
	copy(out, rows)

	if col < 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if col == colName {
			if desc {
				return an > bn
			}
			return an < bn
		}
		av, bv := numericValue(a, col), numericValue(b, col)
		if av == bv {
			return an < bn
		}
		if desc {
			return av > bv
		}
		return av < bv
	})
	return out
}

// filterCacheRows returns rows whose Name contains search (case-insensitive).
// Returns all rows when search is empty.
func filterCacheRows(rows []model.DisplayRow, search string) []model.DisplayRow {
	if search == "" {
		return rows
	}
	lower := strings.ToLower(search)
	out := rows[:0:0]
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), lower) {
			out = append(out, r)
		}
	}
	return out
}

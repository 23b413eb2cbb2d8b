package model

// RowKind distinguishes collection rows from index rows.
type RowKind int

const (
	KindCollection RowKind = iota
	KindIndex
)

// DisplayRow holds display-ready data for a single row of the cache table.
// Size and CachedMB are in scale units (MB by default).
type DisplayRow struct {
	Name          string
	Kind          RowKind
	Size          int64
	CachedMB      int64
	CachedPercent int64
	DeltaRate     int64 // MB/s
	ReadRate      int64 // MB/s
	WriteRate     int64 // MB/s
	PageUseRate   int64 // pages/s
	Reset         bool
}

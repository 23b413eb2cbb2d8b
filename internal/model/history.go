package model

import "time"

const defaultHistoryCap = 60

// ResidencyPoint is one cycle's cluster-wide totals.
type ResidencyPoint struct {
	Timestamp time.Time
	CachedMB  int64
	ReadRate  int64
	WriteRate int64
}

// ResidencyHistory is a fixed-size ring buffer of ResidencyPoints.
// When the buffer is full, new pushes overwrite the oldest entry.
type ResidencyHistory struct {
	buf  []ResidencyPoint
	head int // index of the next write position
	size int
}

// NewResidencyHistory creates a ResidencyHistory with the given capacity.
// If capacity <= 0, defaultHistoryCap (60) is used.
func NewResidencyHistory(capacity int) *ResidencyHistory {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	return &ResidencyHistory{
		buf: make([]ResidencyPoint, capacity),
	}
}

// PointFromRows sums rows into a single point.
func PointFromRows(ts time.Time, rows []DisplayRow) ResidencyPoint {
	p := ResidencyPoint{Timestamp: ts}
	for _, r := range rows {
		p.CachedMB += r.CachedMB
		p.ReadRate += r.ReadRate
		p.WriteRate += r.WriteRate
	}
	return p
}

// Push appends a new point, overwriting the oldest if full.
func (h *ResidencyHistory) Push(p ResidencyPoint) {
	h.buf[h.head] = p
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Len returns the number of valid entries.
func (h *ResidencyHistory) Len() int {
	return h.size
}

// Clear resets the history to empty.
func (h *ResidencyHistory) Clear() {
	h.head = 0
	h.size = 0
}

// Values returns the named field in chronological order (oldest first).
// Valid field names: "cachedMB", "readRate", "writeRate".
func (h *ResidencyHistory) Values(field string) []float64 {
	out := make([]float64, h.size)
	// oldest entry sits at (head - size + cap) % cap
	start := (h.head - h.size + len(h.buf)) % len(h.buf)
	for i := 0; i < h.size; i++ {
		p := h.buf[(start+i)%len(h.buf)]
		switch field {
		case "cachedMB":
			out[i] = float64(p.CachedMB)
		case "readRate":
			out[i] = float64(p.ReadRate)
		case "writeRate":
			out[i] = float64(p.WriteRate)
		}
	}
	return out
}

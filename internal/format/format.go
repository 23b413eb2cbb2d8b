package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatMB formats a value already in scale units with thousands separators.
// Example: 12345 → "12,345 MB".
func FormatMB(mb int64) string {
	return humanize.Comma(mb) + " MB"
}

// FormatRate formats a signed per-second MB rate.
// Example: 1204 → "1,204 MB/s", 0 → "0 MB/s", -3 → "-3 MB/s".
func FormatRate(mbPerSec int64) string {
	return humanize.Comma(mbPerSec) + " MB/s"
}

// FormatPageRate formats a pages-per-second rate.
// Example: 1204 → "1,204 /s".
func FormatPageRate(pagesPerSec int64) string {
	return humanize.Comma(pagesPerSec) + " /s"
}

// FormatNumber formats an integer with comma separators.
// Example: 12345678 → "12,345,678".
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats an integral percentage.
// Example: 92 → "92%".
func FormatPercent(p int64) string {
	return fmt.Sprintf("%d%%", p)
}

// FormatLatency formats a duration in milliseconds with 2 decimal places,
// switching to seconds at 1000 ms. Negative values return "---".
func FormatLatency(d time.Duration) string {
	if d < 0 {
		return "---"
	}
	ms := float64(d) / float64(time.Millisecond)
	if ms >= 1000 {
		return fmt.Sprintf("%.2f s", ms/1000)
	}
	return fmt.Sprintf("%.2f ms", ms)
}

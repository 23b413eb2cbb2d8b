package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/format"
)

const sparkWidth = 24

// renderHeader renders the top header bar.
//
// Layout:
//
//	left:   app name and the credential-free server URI
//	center: total cached MB across shown rows plus its sparkline
//	right:  "Last: HH:MM:SS  Every: 60s" (or a waiting hint before the first frame)
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	left := "MongoCacheView  " + StyleDim.Render(app.displayURI)

	var center, right string
	if app.frame.Seq == 0 {
		right = StyleDim.Render("Waiting for first sample...")
	} else {
		cached := app.history.Values("cachedMB")
		var total int64
		if n := len(cached); n > 0 {
			total = int64(cached[n-1])
		}
		center = "Cached " + format.FormatMB(total) + " " +
			RenderSparkline(cached, sparkWidth, colorCyan)
		right = StyleDim.Render(fmt.Sprintf("Last: %s  Every: %s",
			app.frame.At.Format("15:04:05"), formatDuration(app.interval)))
	}

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// formatDuration formats an interval compactly, e.g. "10s", "2m" or "1m30s".
func formatDuration(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm%ds", int(d/time.Minute), int((d%time.Minute)/time.Second))
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

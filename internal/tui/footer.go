package tui

import "strings"

// renderStatus renders the cycle's status lines, one per row.
func renderStatus(app *App) string {
	if len(app.frame.Lines) == 0 {
		return ""
	}
	return StyleDim.Render(strings.Join(app.frame.Lines, "\n"))
}

// renderFooter renders the key binding help footer at full terminal width.
// When app.showHelp is true, shows all key bindings; otherwise a brief hint.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	text := "? for help  " + strings.TrimSpace(resetMarker) + " counters reset"
	if app.showHelp {
		text = helpText
	}
	return StyleDim.Width(width).Render(text)
}

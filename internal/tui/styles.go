package tui

import "github.com/charmbracelet/lipgloss"

// Color constants.
var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorGray   = lipgloss.Color("#6b7280")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorCyan   = lipgloss.Color("#06b6d4")
	colorPurple = lipgloss.Color("#8b5cf6")
	colorOrange = lipgloss.Color("#f97316")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
	colorAlt    = lipgloss.Color("#0f172a")
)

// StyleHeader is the full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleDim renders secondary text.
var StyleDim = lipgloss.NewStyle().Foreground(colorGray)

// percentStyle colors a cache residency percentage: most of the entity in
// cache is green, a small share is dim.
func percentStyle(base lipgloss.Style, pct int64) lipgloss.Style {
	switch {
	case pct >= 75:
		return base.Foreground(colorGreen)
	case pct >= 25:
		return base.Foreground(colorYellow)
	default:
		return base.Foreground(colorGray)
	}
}

// deltaStyle colors residency growth orange and shrinkage blue.
func deltaStyle(base lipgloss.Style, delta int64) lipgloss.Style {
	switch {
	case delta > 0:
		return base.Foreground(colorOrange)
	case delta < 0:
		return base.Foreground(colorBlue)
	default:
		return base.Foreground(colorWhite)
	}
}

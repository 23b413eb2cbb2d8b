package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

// testColor is a neutral color used for sparkline tests.
var testColor = lipgloss.Color("#ffffff")

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"nil", nil, 5, "     "},
		{"zero width", []float64{1, 2}, 0, ""},
		{"flat series at floor", []float64{7, 7, 7}, 3, "▁▁▁"},
		{"min to max", []float64{0, 7}, 2, "▁█"},
		{"large base still spans", []float64{10_000, 10_007}, 2, "▁█"},
		{"left padded", []float64{1, 2}, 4, "  ▁█"},
		{"keeps last width values", []float64{100, 0, 1, 2, 3, 4, 5, 6, 7}, 8, "▁▂▃▄▅▆▇█"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripANSI(RenderSparkline(tc.values, tc.width, testColor)))
		})
	}
}

func TestRenderSparkline_WidthIsExact(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	for _, w := range []int{1, 4, 8, 20} {
		got := []rune(strings.TrimSpace(stripANSI(RenderSparkline(values, w, testColor))))
		assert.Equal(t, min(w, len(values)), len(got), "width %d", w)
	}
}

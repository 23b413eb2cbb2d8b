package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

// stripANSI removes ANSI escape sequences for plain-text content assertions.
// Handles all CSI sequences (not just SGR m-terminated ones).
func stripANSI(s string) string {
	var out strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			// CSI final bytes are in range 0x40–0x7E
			if r >= 0x40 && r <= 0x7E && r != '[' {
				inEscape = false
			}
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func fixtureRows() []model.DisplayRow {
	return []model.DisplayRow{
		{Name: "shop.orders", Kind: model.KindCollection, Size: 900, CachedMB: 500, CachedPercent: 55, DeltaRate: 2, ReadRate: 10, WriteRate: 1, PageUseRate: 300},
		{Name: "shop.orders - IX: _id_", Kind: model.KindIndex, Size: 40, CachedMB: 38, CachedPercent: 95, ReadRate: 1, PageUseRate: 80},
		{Name: "crm.users", Kind: model.KindCollection, Size: 120, CachedMB: 120, CachedPercent: 100, DeltaRate: -4, WriteRate: 6, PageUseRate: 20, Reset: true},
	}
}

package tui

import (
	"time"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

// FrameMsg delivers one rendered cycle to the TUI. Seq increases once per
// cycle; the same frame may be delivered again as status lines arrive.
type FrameMsg struct {
	Seq   int
	At    time.Time
	Rows  []model.DisplayRow
	Lines []string
}

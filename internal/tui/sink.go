package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

const clearScreen = "\033[H\033[2J"

// Sender delivers messages into a running Bubble Tea program.
// *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSink turns each cycle into FrameMsgs for the interactive App. It is
// driven from a single goroutine (the scheduler).
type ProgramSink struct {
	program Sender
	now     func() time.Time
	frame   FrameMsg
}

// NewProgramSink returns a ProgramSink sending to p.
func NewProgramSink(p Sender) *ProgramSink {
	return &ProgramSink{program: p, now: time.Now}
}

// Clear starts a new frame.
func (s *ProgramSink) Clear() error {
	s.frame = FrameMsg{Seq: s.frame.Seq + 1, At: s.now()}
	return nil
}

// RenderTable publishes the frame's rows.
func (s *ProgramSink) RenderTable(rows []model.DisplayRow) error {
	s.frame.Rows = append([]model.DisplayRow(nil), rows...)
	s.send()
	return nil
}

// PrintLine appends a status line and republishes the frame.
func (s *ProgramSink) PrintLine(text string) error {
	s.frame.Lines = append(s.frame.Lines, text)
	s.send()
	return nil
}

func (s *ProgramSink) send() {
	f := s.frame
	f.Lines = append([]string(nil), s.frame.Lines...)
	s.program.Send(f)
}

// PlainSink writes each cycle as plain text: a screen clear when attached
// to a terminal, the table, then the status lines.
type PlainSink struct {
	w        io.Writer
	terminal bool
	width    func() int
}

// NewPlainSink returns a PlainSink writing to w. When w is a terminal the
// table is fitted to its width on every frame.
func NewPlainSink(w io.Writer) *PlainSink {
	s := &PlainSink{w: w, width: func() int { return 0 }}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		s.terminal = true
		s.width = func() int {
			width, _, err := term.GetSize(fd)
			if err != nil {
				return 0
			}
			return width
		}
	}
	return s
}

// Clear clears the terminal. It writes nothing when output is redirected.
func (s *PlainSink) Clear() error {
	if !s.terminal {
		return nil
	}
	_, err := io.WriteString(s.w, clearScreen)
	return err
}

// RenderTable writes rows in rank order.
func (s *PlainSink) RenderTable(rows []model.DisplayRow) error {
	_, err := fmt.Fprintln(s.w, renderCacheTable(rows, -1, true, s.width()))
	return err
}

// PrintLine writes a single status line.
func (s *PlainSink) PrintLine(text string) error {
	_, err := fmt.Fprintln(s.w, text)
	return err
}

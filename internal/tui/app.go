package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

// chromeLines is the number of rows used by everything except table rows:
// header, table title, column header and its border, two status lines,
// footer.
const chromeLines = 7

// App is the root Bubble Tea model. Sampling runs elsewhere; App only shows
// the frames it is sent.
type App struct {
	displayURI string
	interval   time.Duration
	refresh    func()

	frame   FrameMsg
	history *model.ResidencyHistory
	table   CacheTableModel

	// Layout
	width, height int

	// UI state
	showHelp bool
}

// NewApp creates an App for the server at displayURI sampled every interval.
func NewApp(displayURI string, interval time.Duration) *App {
	return &App{
		displayURI: displayURI,
		interval:   interval,
		history:    model.NewResidencyHistory(0),
		table:      NewCacheTable(),
	}
}

// OnRefresh sets the callback run when the user asks for an immediate sample.
func (app *App) OnRefresh(fn func()) {
	app.refresh = fn
}

// Init implements tea.Model.
func (app *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. It is the only place App state changes.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height
		if rows := msg.Height - chromeLines; rows > 0 {
			app.table.pageSize = rows
		}
		app.table.clampPage(len(app.table.displayRows))

	case FrameMsg:
		if msg.Seq != app.frame.Seq {
			app.history.Push(model.PointFromRows(msg.At, msg.Rows))
		}
		app.frame = msg
		app.table.SetData(msg.Rows)

	case tea.KeyMsg:
		if app.table.searching {
			var cmd tea.Cmd
			app.table, cmd = app.table.Update(msg)
			return app, cmd
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			if app.refresh != nil {
				app.refresh()
			}
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		default:
			var cmd tea.Cmd
			app.table, cmd = app.table.Update(msg)
			return app, cmd
		}
	}

	return app, nil
}

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	parts := []string{renderHeader(app)}
	if app.frame.Seq > 0 {
		parts = append(parts, app.table.View(app.width))
	}
	if s := renderStatus(app); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, renderFooter(app))
	return strings.Join(parts, "\n")
}

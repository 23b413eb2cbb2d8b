package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/format"
	"github.com/filipemansano-mongodb/MongoCacheView/internal/model"
)

const (
	nameMinWidth = 24
	resetMarker  = " ↺"
)

// cacheColumns is the fixed column layout shared by the interactive table
// and the plain sink.
var cacheColumns = []columnDef{
	{Title: "Namespace", Width: nameMinWidth, Align: "left"},
	{Title: "Size", Width: 11, Align: "right"},
	{Title: "Cached", Width: 11, Align: "right"},
	{Title: "Cached %", Width: 8, Align: "right"},
	{Title: "Δ/s", Width: 10, Align: "right"},
	{Title: "Read/s", Width: 11, Align: "right"},
	{Title: "Write/s", Width: 11, Align: "right"},
	{Title: "Pages/s", Width: 10, Align: "right"},
}

// CacheTableModel is a sortable, paginated, searchable view of the ranked
// cache rows.
type CacheTableModel struct {
	tableModel
	allRows     []model.DisplayRow
	displayRows []model.DisplayRow
}

// NewCacheTable returns a CacheTableModel that keeps the ranked order until
// a sort column is chosen.
func NewCacheTable() CacheTableModel {
	return CacheTableModel{tableModel: newTableModel(cacheColumns)}
}

// SetData applies the current filter and sort to rows.
func (m *CacheTableModel) SetData(rows []model.DisplayRow) {
	m.allRows = rows
	m.refresh()
}

func (m *CacheTableModel) refresh() {
	filtered := filterCacheRows(m.allRows, m.search)
	m.displayRows = sortCacheRows(filtered, m.sortCol, m.sortDesc)
	m.clampPage(len(m.displayRows))
}

// Update delegates to the embedded tableModel and re-applies filter and
// sort when either changed.
func (m CacheTableModel) Update(msg tea.Msg) (CacheTableModel, tea.Cmd) {
	prevSort, prevDesc, prevSearch, prevPage := m.sortCol, m.sortDesc, m.search, m.page

	base, cmd := m.tableModel.Update(msg)
	m.tableModel = base

	if m.sortCol != prevSort || m.sortDesc != prevDesc || m.search != prevSearch {
		m.refresh()
	} else if m.page != prevPage {
		m.clampPage(len(m.displayRows))
	}
	return m, cmd
}

// View renders the title bar and the current page of rows.
func (m *CacheTableModel) View(width int) string {
	pc := pageCount(len(m.displayRows), m.pageSize)
	hdr := m.renderTitle(m.page+1, pc)

	start, end := pageBounds(len(m.displayRows), m.page, m.pageSize)
	body := renderCacheTable(m.displayRows[start:end], m.sortCol, m.sortDesc, width)
	return lipgloss.JoinVertical(lipgloss.Left, hdr, body)
}

func (m *CacheTableModel) renderTitle(page, pages int) string {
	pageInfo := fmt.Sprintf("Page %d/%d", page, pages)
	count := fmt.Sprintf("%d rows", len(m.displayRows))

	var right string
	switch {
	case m.searching:
		right = "Filter: " + m.input.View()
	case m.search != "":
		right = fmt.Sprintf("filter=%q  %s  %s", m.search, count, pageInfo)
	default:
		right = fmt.Sprintf("[/: filter]  [1-8: sort]  %s  %s", count, pageInfo)
	}
	return StyleDim.Render("Cache Residency  " + right)
}

// renderCacheTable renders rows as a lipgloss table. sortCol -1 marks no
// column. width <= 0 lets the table size itself.
func renderCacheTable(rows []model.DisplayRow, sortCol int, sortDesc bool, width int) string {
	if len(rows) == 0 {
		return StyleDim.Render("  (no collections)")
	}

	headers := make([]string, len(cacheColumns))
	for i, c := range cacheColumns {
		headers[i] = c.Title
		if i == sortCol {
			if sortDesc {
				headers[i] += "↓"
			} else {
				headers[i] += "↑"
			}
		}
	}

	nameWidth := nameColumnWidth(width)
	t := ltable.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				if col == sortCol {
					return lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
				}
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray)
			}
			base := lipgloss.NewStyle().PaddingRight(1)
			if cacheColumns[col].Align == "right" {
				base = base.Align(lipgloss.Right)
			}
			if row%2 == 0 {
				base = base.Background(colorAlt)
			}
			if row < 0 || row >= len(rows) {
				return base
			}
			r := rows[row]
			switch col {
			case colName:
				if r.Kind == model.KindIndex {
					return base.Foreground(colorCyan)
				}
				return base.Foreground(colorWhite)
			case colPercent:
				return percentStyle(base, r.CachedPercent)
			case colDelta:
				return deltaStyle(base, r.DeltaRate)
			case colRead:
				return base.Foreground(colorGreen)
			case colWrite:
				return base.Foreground(colorOrange)
			case colPages:
				return base.Foreground(colorPurple)
			default:
				return base.Foreground(colorWhite)
			}
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	if width > 0 {
		t = t.Width(width)
	}

	for _, r := range rows {
		cells := make([]string, len(cacheColumns))
		for col := range cacheColumns {
			cells[col] = cacheCellValue(r, col)
		}
		cells[colName] = nameCell(r, nameWidth)
		t = t.Row(cells...)
	}
	return t.String()
}

// nameColumnWidth gives the namespace column whatever the numeric columns
// leave over, never less than nameMinWidth.
func nameColumnWidth(width int) int {
	if width <= 0 {
		return 64
	}
	rest := 0
	for _, c := range cacheColumns[1:] {
		rest += c.Width + 1
	}
	if w := width - rest - 1; w > nameMinWidth {
		return w
	}
	return nameMinWidth
}

// nameCell renders the row name, flagged when its counters went backwards.
// maxWidth <= 0 disables truncation.
func nameCell(r model.DisplayRow, maxWidth int) string {
	marker := ""
	if r.Reset {
		marker = resetMarker
	}
	if maxWidth <= 0 {
		return r.Name + marker
	}
	return truncateName(r.Name, maxWidth-runewidth.StringWidth(marker)) + marker
}

// cacheCellValue formats a DisplayRow field for a given column index.
func cacheCellValue(r model.DisplayRow, col int) string {
	switch col {
	case colName:
		return nameCell(r, 0)
	case colSize:
		return format.FormatMB(r.Size)
	case colCached:
		return format.FormatMB(r.CachedMB)
	case colPercent:
		return format.FormatPercent(r.CachedPercent)
	case colDelta:
		return format.FormatRate(r.DeltaRate)
	case colRead:
		return format.FormatRate(r.ReadRate)
	case colWrite:
		return format.FormatRate(r.WriteRate)
	case colPages:
		return format.FormatPageRate(r.PageUseRate)
	default:
		return ""
	}
}

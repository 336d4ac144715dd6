// Package components provides reusable TUI widgets shared by the views.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align controls horizontal alignment of cell content within a column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes a single table column.
type Column struct {
	Title string
	Width int
	Align Align
}

// TableStyles holds the lipgloss styles the table renders with. The app
// builds these from its theme so the component stays theme-agnostic.
type TableStyles struct {
	Header   lipgloss.Style
	Row      lipgloss.Style
	RowAlt   lipgloss.Style
	Selected lipgloss.Style
	Footer   lipgloss.Style
}

// Table is a scrollable, selectable table with optional pagination footer.
type Table struct {
	columns     []Column
	rows        [][]string
	cursor      int
	offset      int
	visibleRows int
	focused     bool

	page       int
	totalPages int
	totalRows  int

	styles TableStyles
}

// NewTable creates a table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:     columns,
		visibleRows: 10,
	}
}

// SetStyles replaces the table's render styles.
func (t *Table) SetStyles(s TableStyles) {
	t.styles = s
}

// SetRows replaces the table contents and clamps the cursor.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	if t.cursor >= len(rows) {
		t.cursor = len(rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.clampOffset()
}

// SetPagination configures the footer for server-side paged data. Pages are
// one-based. Pass totalPages 0 to hide the footer.
func (t *Table) SetPagination(page, totalPages, totalRows int) {
	t.page = page
	t.totalPages = totalPages
	t.totalRows = totalRows
}

// SetVisibleRows sets how many rows are shown before scrolling.
func (t *Table) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	t.visibleRows = n
	t.clampOffset()
}

// Focus marks the table as focused, which highlights the selected row.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Focused reports whether the table is focused.
func (t *Table) Focused() bool {
	return t.focused
}

// Selected returns the cursor index, or -1 when the table is empty.
func (t *Table) Selected() int {
	if len(t.rows) == 0 {
		return -1
	}
	return t.cursor
}

// SelectedRow returns the currently selected row, or nil when empty.
func (t *Table) SelectedRow() []string {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return nil
	}
	return t.rows[t.cursor]
}

// Len returns the number of rows currently loaded.
func (t *Table) Len() int {
	return len(t.rows)
}

// MoveUp moves the cursor up one row.
func (t *Table) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
	t.clampOffset()
}

// MoveDown moves the cursor down one row.
func (t *Table) MoveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
	t.clampOffset()
}

// PageUp moves the cursor up by one screenful.
func (t *Table) PageUp() {
	t.cursor -= t.visibleRows
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.clampOffset()
}

// PageDown moves the cursor down by one screenful.
func (t *Table) PageDown() {
	t.cursor += t.visibleRows
	if t.cursor > len(t.rows)-1 {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.clampOffset()
}

// GotoTop moves the cursor to the first row.
func (t *Table) GotoTop() {
	t.cursor = 0
	t.offset = 0
}

func (t *Table) clampOffset() {
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.visibleRows {
		t.offset = t.cursor - t.visibleRows + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// Render draws the table as a string.
func (t *Table) Render() string {
	var b strings.Builder

	// Header row.
	var header strings.Builder
	for i, col := range t.columns {
		if i > 0 {
			header.WriteString(" ")
		}
		header.WriteString(t.fit(col.Title, col))
	}
	b.WriteString(t.styles.Header.Render(header.String()))
	b.WriteString("\n")

	if len(t.rows) == 0 {
		b.WriteString(t.styles.Row.Render("  (no entries)"))
		b.WriteString("\n")
	}

	end := t.offset + t.visibleRows
	if end > len(t.rows) {
		end = len(t.rows)
	}

	for idx := t.offset; idx < end; idx++ {
		row := t.rows[idx]
		var line strings.Builder
		for i, col := range t.columns {
			if i > 0 {
				line.WriteString(" ")
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			line.WriteString(t.fit(cell, col))
		}

		style := t.styles.Row
		if idx%2 == 1 {
			style = t.styles.RowAlt
		}
		if t.focused && idx == t.cursor {
			style = t.styles.Selected
		}
		b.WriteString(style.Render(line.String()))
		b.WriteString("\n")
	}

	if footer := t.footer(); footer != "" {
		b.WriteString(t.styles.Footer.Render(footer))
		b.WriteString("\n")
	}

	return b.String()
}

func (t *Table) footer() string {
	switch {
	case t.totalPages > 0:
		return fmt.Sprintf("Page %d/%d (%d total)", t.page, t.totalPages, t.totalRows)
	case len(t.rows) > t.visibleRows:
		return fmt.Sprintf("Showing %d-%d of %d", t.offset+1, min(t.offset+t.visibleRows, len(t.rows)), len(t.rows))
	default:
		return ""
	}
}

func (t *Table) fit(s string, col Column) string {
	if len(s) > col.Width {
		runes := []rune(s)
		if len(runes) > col.Width {
			if col.Width > 1 {
				return string(runes[:col.Width-1]) + "…"
			}
			return string(runes[:col.Width])
		}
	}
	pad := col.Width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	if col.Align == AlignRight {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

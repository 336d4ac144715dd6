// Package history provides the event journal view.
package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/tui/components"
)

const recentLimit = 200

// LogView lists the most recent journal events, newest first, optionally
// narrowed to a single day.
type LogView struct {
	journal *journal.Journal
	table   *components.Table
	counts  map[journal.EventType]int
	err     error

	// filterDay narrows the list to one day when non-zero.
	filterDay int
}

// NewLogView creates the history view.
func NewLogView(j *journal.Journal) *LogView {
	columns := []components.Column{
		{Title: "Day", Width: 4, Align: components.AlignRight},
		{Title: "Type", Width: 13},
		{Title: "Ward", Width: 18},
		{Title: "Detail", Width: 48},
	}
	table := components.NewTable(columns)
	table.SetVisibleRows(18)
	table.Focus(true)

	return &LogView{journal: j, table: table}
}

// SetTableStyles forwards theme styles to the embedded table.
func (v *LogView) SetTableStyles(s components.TableStyles) {
	v.table.SetStyles(s)
}

// ToggleDayFilter narrows the list to day, or widens it back out when the
// same day is already selected.
func (v *LogView) ToggleDayFilter(day int) {
	if v.filterDay == day {
		v.filterDay = 0
		return
	}
	v.filterDay = day
}

// FilterDay returns the day the view is narrowed to, or zero.
func (v *LogView) FilterDay() int { return v.filterDay }

// Load refreshes the event list from the journal.
func (v *LogView) Load(ctx context.Context) error {
	v.err = nil

	var (
		events []journal.Event
		err    error
	)
	if v.filterDay > 0 {
		events, err = v.journal.EventsForDay(ctx, v.filterDay)
	} else {
		events, err = v.journal.Recent(ctx, recentLimit)
	}
	if err != nil {
		v.err = err
		return err
	}

	rows := make([][]string, len(events))
	for i, ev := range events {
		rows[i] = []string{
			fmt.Sprintf("%d", ev.Day),
			string(ev.Type),
			ev.Ward,
			ev.Detail,
		}
	}
	v.table.SetRows(rows)

	counts, err := v.journal.CountByType(ctx)
	if err == nil {
		v.counts = counts
	}
	return nil
}

// MoveUp scrolls up.
func (v *LogView) MoveUp() { v.table.MoveUp() }

// MoveDown scrolls down.
func (v *LogView) MoveDown() { v.table.MoveDown() }

// PageUp scrolls a screenful up.
func (v *LogView) PageUp() { v.table.PageUp() }

// PageDown scrolls a screenful down.
func (v *LogView) PageDown() { v.table.PageDown() }

// Render draws the history view.
func (v *LogView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ EVENT HISTORY ═══"))
	b.WriteString("\n\n")

	if v.filterDay > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Showing day %d only", v.filterDay)))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if len(v.counts) > 0 {
		var parts []string
		for _, t := range []journal.EventType{journal.EventCure, journal.EventDeath, journal.EventTransfer, journal.EventEscalation} {
			if n, ok := v.counts[t]; ok && n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", strings.ToLower(string(t)), n))
			}
		}
		if len(parts) > 0 {
			b.WriteString(labelStyle.Render("Totals: "))
			b.WriteString(valueStyle.Render(strings.Join(parts, "  ")))
			b.WriteString("\n\n")
		}
	}

	if v.table.Len() == 0 {
		b.WriteString(labelStyle.Render("No events recorded yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Scroll  PgUp/PgDn:Page  d:Today only"))

	return b.String()
}

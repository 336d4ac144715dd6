// Package wards provides the ward occupancy board.
package wards

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/models"
)

// BoardView shows every ward's occupancy and local stock. The cursor walks
// the ward list; the selected ward's patients and shelves are expanded.
type BoardView struct {
	state  *hospital.State
	cursor int
}

// NewBoardView creates the ward board.
func NewBoardView(state *hospital.State) *BoardView {
	return &BoardView{state: state}
}

// MoveUp moves the ward selection up.
func (v *BoardView) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// MoveDown moves the ward selection down.
func (v *BoardView) MoveDown() {
	if v.cursor < len(v.state.Wards())-1 {
		v.cursor++
	}
}

// SelectedWard returns the ward under the cursor.
func (v *BoardView) SelectedWard() *hospital.Ward {
	wards := v.state.Wards()
	if v.cursor < 0 || v.cursor >= len(wards) {
		return nil
	}
	return wards[v.cursor]
}

func occupancyBar(used, capacity, width int) string {
	if capacity <= 0 {
		return strings.Repeat(" ", width)
	}
	ratio := float64(used) / float64(capacity)
	if ratio > 1 {
		ratio = 1
	}
	barWidth := width - 2
	filled := int(ratio * float64(barWidth))
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"

	var color lipgloss.Color
	switch {
	case ratio >= 0.9:
		color = lipgloss.Color("#FF4444")
	case ratio >= 0.6:
		color = lipgloss.Color("#FFAA00")
	default:
		color = lipgloss.Color("#00FF00")
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// Render draws the board.
func (v *BoardView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ WARD BOARD ═══"))
	b.WriteString("\n\n")

	barWidth := 20
	if width < 80 {
		barWidth = 12
	}

	for i, w := range v.state.Wards() {
		name := fmt.Sprintf("%-18s", w.Name)
		line := fmt.Sprintf("%s %s %3d/%-3d beds", name, occupancyBar(w.PatientCount(), w.PatientCapacity, barWidth), w.PatientCount(), w.PatientCapacity)
		if w.Kind == hospital.KindWarehouse {
			line = fmt.Sprintf("%s %s  ledger stock", name, strings.Repeat(" ", barWidth))
		}
		if i == v.cursor {
			b.WriteString(selStyle.Render("▸ " + line))
		} else {
			b.WriteString(labelStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	ward := v.SelectedWard()
	if ward == nil {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(strings.ToUpper(ward.Name)))
	b.WriteString("\n")

	switch ward.Kind {
	case hospital.KindWarehouse:
		v.renderLedger(&b, ward, labelStyle, valueStyle)
	default:
		v.renderPatients(&b, ward, labelStyle, valueStyle, height)
		v.renderStock(&b, ward, labelStyle, valueStyle)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select ward"))

	return b.String()
}

func (v *BoardView) renderPatients(b *strings.Builder, ward *hospital.Ward, label, value lipgloss.Style, height int) {
	patients := ward.Patients()
	if len(patients) == 0 {
		b.WriteString(label.Render("No patients."))
		b.WriteString("\n")
		return
	}

	// Leave room for the ward list and stock section.
	maxRows := height - len(v.state.Wards()) - 12
	if maxRows < 3 {
		maxRows = 3
	}

	for i, p := range patients {
		if i >= maxRows {
			b.WriteString(label.Render(fmt.Sprintf("  … and %d more", len(patients)-i)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("  %-5d %-24s %-9s %s", p.ID, p.FullName(), p.Severity.String(), p.Diagnosis)
		if p.Severity == models.SeverityCritical {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Render(line))
		} else {
			b.WriteString(value.Render(line))
		}
		b.WriteString("\n")
	}
}

func (v *BoardView) renderStock(b *strings.Builder, ward *hospital.Ward, label, value lipgloss.Style) {
	stock := ward.Stock()
	if len(stock) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(label.Render(fmt.Sprintf("Shelf stock (%d/%d slots):", len(stock), ward.SupplyCapacity)))
	b.WriteString("\n")
	for _, st := range stock {
		name := v.supplyName(st.SupplyID)
		b.WriteString(value.Render(fmt.Sprintf("  %-5d %-28s x%d", st.SupplyID, name, st.Quantity)))
		b.WriteString("\n")
	}
}

func (v *BoardView) renderLedger(b *strings.Builder, ward *hospital.Ward, label, value lipgloss.Style) {
	entries := ward.LedgerEntries()
	if len(entries) == 0 {
		b.WriteString(label.Render("Ledger is empty."))
		b.WriteString("\n")
		return
	}
	b.WriteString(label.Render(fmt.Sprintf("%-5s %-28s %10s %10s", "ID", "Supply", "On hand", "Withdrawn")))
	b.WriteString("\n")
	for _, e := range entries {
		b.WriteString(value.Render(fmt.Sprintf("%-5d %-28s %10d %10d", e.SupplyID, v.supplyName(e.SupplyID), e.TotalOnHand, e.WithdrawnToday)))
		b.WriteString("\n")
	}
}

func (v *BoardView) supplyName(id int) string {
	sup, err := v.state.SupplyByID(id)
	if err != nil {
		return "(unlisted)"
	}
	return sup.Name
}

// Package treatment provides the cure view: pick a ward, pick a patient,
// attempt the cure.
package treatment

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/models"
	"github.com/medboard/medboard/internal/services/treatment"
	"github.com/medboard/medboard/internal/tui/components"
)

// CureView walks the occupied clinical wards and their patients.
type CureView struct {
	state   *hospital.State
	service *treatment.Service
	table   *components.Table

	wards      []*hospital.Ward
	wardCursor int

	// inWard is set once a ward was entered and the patient table has
	// focus.
	inWard bool
	err    error
}

// NewCureView creates the treatment view.
func NewCureView(state *hospital.State, service *treatment.Service) *CureView {
	columns := []components.Column{
		{Title: "ID", Width: 5, Align: components.AlignRight},
		{Title: "Name", Width: 24},
		{Title: "Severity", Width: 9},
		{Title: "Diagnosis", Width: 24},
		{Title: "Needs", Width: 18},
	}
	table := components.NewTable(columns)
	table.SetVisibleRows(12)

	return &CureView{state: state, service: service, table: table}
}

// SetTableStyles forwards theme styles to the embedded table.
func (v *CureView) SetTableStyles(s components.TableStyles) {
	v.table.SetStyles(s)
}

// Load refreshes the treatable ward list and the patient table.
func (v *CureView) Load(ctx context.Context) error {
	v.err = nil
	v.wards = v.service.TreatableWards()

	if len(v.wards) == 0 {
		v.wardCursor = 0
		v.inWard = false
		v.table.SetRows(nil)
		return nil
	}
	if v.wardCursor >= len(v.wards) {
		v.wardCursor = len(v.wards) - 1
	}

	v.reloadPatients()
	return nil
}

func (v *CureView) reloadPatients() {
	ward := v.selectedWard()
	if ward == nil {
		v.table.SetRows(nil)
		return
	}

	patients := ward.Patients()
	rows := make([][]string, len(patients))
	for i, p := range patients {
		rows[i] = []string{
			fmt.Sprintf("%d", p.ID),
			p.FullName(),
			p.Severity.String(),
			p.Diagnosis,
			v.needs(p),
		}
	}
	v.table.SetRows(rows)
	v.table.SetPagination(0, 0, 0)
}

func (v *CureView) needs(p *models.Patient) string {
	if p.RequiredQuantity == 0 {
		return "-"
	}
	sup, err := v.state.SupplyByID(p.RequiredSupplyID)
	if err != nil {
		return fmt.Sprintf("#%d x%d", p.RequiredSupplyID, p.RequiredQuantity)
	}
	return fmt.Sprintf("%s x%d", sup.Name, p.RequiredQuantity)
}

func (v *CureView) selectedWard() *hospital.Ward {
	if v.wardCursor < 0 || v.wardCursor >= len(v.wards) {
		return nil
	}
	return v.wards[v.wardCursor]
}

// InWard reports whether the patient table has focus.
func (v *CureView) InWard() bool { return v.inWard }

// EnterWard gives focus to the patient table of the selected ward.
func (v *CureView) EnterWard() {
	if v.selectedWard() == nil {
		return
	}
	v.inWard = true
	v.table.Focus(true)
	v.table.GotoTop()
}

// LeaveWard returns focus to the ward list.
func (v *CureView) LeaveWard() {
	v.inWard = false
	v.table.Focus(false)
}

// MoveUp moves the focused cursor up.
func (v *CureView) MoveUp() {
	if v.inWard {
		v.table.MoveUp()
		return
	}
	if v.wardCursor > 0 {
		v.wardCursor--
		v.reloadPatients()
	}
}

// MoveDown moves the focused cursor down.
func (v *CureView) MoveDown() {
	if v.inWard {
		v.table.MoveDown()
		return
	}
	if v.wardCursor < len(v.wards)-1 {
		v.wardCursor++
		v.reloadPatients()
	}
}

// TreatSelected attempts to cure the highlighted patient. The error comes
// back to the caller for the alert bar; the view reloads on success.
func (v *CureView) TreatSelected(ctx context.Context) (*models.Patient, error) {
	ward := v.selectedWard()
	if ward == nil {
		return nil, hospital.ErrInvalidSelection
	}
	idx := v.table.Selected()
	if idx < 0 {
		return nil, hospital.ErrInvalidSelection
	}

	p, err := v.service.Treat(ctx, ward.Name, idx)
	if err != nil {
		return nil, err
	}
	v.Load(ctx)
	return p, nil
}

// Render draws the treatment view.
func (v *CureView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ TREATMENT ═══"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Actions left: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", v.state.ActionsLeft)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if len(v.wards) == 0 {
		b.WriteString(labelStyle.Render("No ward currently holds patients."))
		b.WriteString("\n")
		return b.String()
	}

	for i, w := range v.wards {
		line := fmt.Sprintf("%s (%d patients)", w.Name, w.PatientCount())
		if i == v.wardCursor && !v.inWard {
			b.WriteString(selStyle.Render("▸ " + line))
		} else if i == v.wardCursor {
			b.WriteString(valueStyle.Render("▸ " + line))
		} else {
			b.WriteString(labelStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.table.Render())

	b.WriteString("\n")
	if v.inWard {
		b.WriteString(helpStyle.Render("Up/Down:Select patient  Enter:Treat  Esc:Back to wards"))
	} else {
		b.WriteString(helpStyle.Render("Up/Down:Select ward  Enter:Open ward"))
	}

	return b.String()
}

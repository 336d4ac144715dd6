// Package warehouse provides the central warehouse view: the stock ledger,
// provider procurement and ward distribution.
package warehouse

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/services/warehouse"
	"github.com/medboard/medboard/internal/tui/components"
)

// Mode is the view's input state.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeProcure
	ModePickWard
	ModeQuantity
)

// StockView shows the warehouse ledger and drives procurement and
// distribution.
type StockView struct {
	state   *hospital.State
	service *warehouse.Service
	table   *components.Table

	mode Mode
	err  error

	procureForm  *components.Form
	quantityForm *components.Form

	// distribution picks a ward for the selected ledger entry
	wards      []*hospital.Ward
	wardCursor int
	distSupply int
}

// NewStockView creates the warehouse view.
func NewStockView(state *hospital.State, service *warehouse.Service) *StockView {
	columns := []components.Column{
		{Title: "ID", Width: 6, Align: components.AlignRight},
		{Title: "Supply", Width: 28},
		{Title: "Category", Width: 14},
		{Title: "On hand", Width: 8, Align: components.AlignRight},
		{Title: "Withdrawn", Width: 9, Align: components.AlignRight},
	}
	table := components.NewTable(columns)
	table.SetVisibleRows(14)
	table.Focus(true)

	return &StockView{
		state:   state,
		service: service,
		table:   table,
		procureForm: components.NewForm("REQUEST FROM PROVIDER",
			components.Field{Label: "Supply ID", Numeric: true},
			components.Field{Label: "Quantity", Numeric: true},
			components.Field{Label: "Name (new supplies)"},
			components.Field{Label: "Category"},
		),
		quantityForm: components.NewForm("QUANTITY TO DISTRIBUTE",
			components.Field{Label: "Quantity", Numeric: true},
		),
	}
}

// SetTableStyles forwards theme styles to the embedded table.
func (v *StockView) SetTableStyles(s components.TableStyles) {
	v.table.SetStyles(s)
}

// SetFormStyles forwards theme styles to the forms.
func (v *StockView) SetFormStyles(s components.FormStyles) {
	v.procureForm.SetStyles(s)
	v.quantityForm.SetStyles(s)
}

// Mode returns the current input mode.
func (v *StockView) Mode() Mode { return v.mode }

// InForm reports whether keystrokes should be routed to a form.
func (v *StockView) InForm() bool {
	return v.mode == ModeProcure || v.mode == ModeQuantity
}

// Load refreshes the ledger table.
func (v *StockView) Load(ctx context.Context) error {
	v.err = nil

	entries := v.state.Warehouse().LedgerEntries()
	rows := make([][]string, len(entries))
	for i, e := range entries {
		name := "(unlisted)"
		category := ""
		if sup, err := v.state.SupplyByID(e.SupplyID); err == nil {
			name = sup.Name
			category = sup.Category
		}
		rows[i] = []string{
			fmt.Sprintf("%d", e.SupplyID),
			name,
			category,
			fmt.Sprintf("%d", e.TotalOnHand),
			fmt.Sprintf("%d", e.WithdrawnToday),
		}
	}
	v.table.SetRows(rows)
	return nil
}

func (v *StockView) selectedSupplyID() (int, bool) {
	entries := v.state.Warehouse().LedgerEntries()
	idx := v.table.Selected()
	if idx < 0 || idx >= len(entries) {
		return 0, false
	}
	return entries[idx].SupplyID, true
}

// MoveUp moves the focused cursor.
func (v *StockView) MoveUp() {
	if v.mode == ModePickWard {
		if v.wardCursor > 0 {
			v.wardCursor--
		}
		return
	}
	v.table.MoveUp()
}

// MoveDown moves the focused cursor.
func (v *StockView) MoveDown() {
	if v.mode == ModePickWard {
		if v.wardCursor < len(v.wards)-1 {
			v.wardCursor++
		}
		return
	}
	v.table.MoveDown()
}

// OpenProcure opens the provider request form.
func (v *StockView) OpenProcure() {
	v.procureForm.Reset()
	v.mode = ModeProcure
}

// StartDistribute begins distribution of the selected ledger entry.
func (v *StockView) StartDistribute() {
	id, ok := v.selectedSupplyID()
	if !ok {
		return
	}
	v.distSupply = id
	v.wards = v.state.ClinicalWards()
	v.wardCursor = 0
	v.mode = ModePickWard
}

// Cancel aborts whatever flow is open and returns to browsing.
func (v *StockView) Cancel() {
	v.mode = ModeBrowse
	v.err = nil
}

// UpdateForm routes a message to the open form.
func (v *StockView) UpdateForm(msg tea.Msg) tea.Cmd {
	switch v.mode {
	case ModeProcure:
		return v.procureForm.Update(msg)
	case ModeQuantity:
		return v.quantityForm.Update(msg)
	}
	return nil
}

// Submit advances the open flow. It returns a result line for the alert
// bar when an operation completed.
func (v *StockView) Submit(ctx context.Context) (string, error) {
	switch v.mode {
	case ModeProcure:
		input := warehouse.ProcureInput{
			SupplyID: v.procureForm.IntValue(0),
			Quantity: v.procureForm.IntValue(1),
			Name:     v.procureForm.Value(2),
			Category: v.procureForm.Value(3),
		}
		if err := v.service.RequestFromProvider(ctx, input); err != nil {
			return "", err
		}
		v.mode = ModeBrowse
		v.Load(ctx)
		return fmt.Sprintf("Received %d of supply %d from provider", input.Quantity, input.SupplyID), nil

	case ModePickWard:
		if v.wardCursor >= len(v.wards) {
			return "", hospital.ErrInvalidSelection
		}
		v.quantityForm.Reset()
		v.mode = ModeQuantity
		return "", nil

	case ModeQuantity:
		ward := v.wards[v.wardCursor]
		qty := v.quantityForm.IntValue(0)
		if err := v.service.DistributeToWard(ctx, ward.Name, v.distSupply, qty); err != nil {
			return "", err
		}
		v.mode = ModeBrowse
		v.Load(ctx)
		return fmt.Sprintf("Distributed %d of supply %d to %s", qty, v.distSupply, ward.Name), nil
	}
	return "", nil
}

// Render draws the warehouse view.
func (v *StockView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ CENTRAL WAREHOUSE ═══"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Withdrawal quota left today: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", v.service.QuotaRemaining())))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	switch v.mode {
	case ModeProcure:
		b.WriteString(v.procureForm.Render())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Tab:Next field  Enter:Submit  Esc:Cancel"))
		return b.String()

	case ModePickWard:
		b.WriteString(titleStyle.Render(fmt.Sprintf("Distribute supply %d to:", v.distSupply)))
		b.WriteString("\n")
		for i, w := range v.wards {
			line := fmt.Sprintf("  %s (%d/%d shelf slots used)", w.Name, len(w.Stock()), w.SupplyCapacity)
			if i == v.wardCursor {
				b.WriteString(selStyle.Render("▸" + line[1:]))
			} else {
				b.WriteString(labelStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Up/Down:Choose ward  Enter:Next  Esc:Cancel"))
		return b.String()

	case ModeQuantity:
		b.WriteString(labelStyle.Render(fmt.Sprintf("Supply %d to %s", v.distSupply, v.wards[v.wardCursor].Name)))
		b.WriteString("\n\n")
		b.WriteString(v.quantityForm.Render())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Enter:Distribute  Esc:Cancel"))
		return b.String()
	}

	if v.table.Len() == 0 {
		b.WriteString(labelStyle.Render("The ledger is empty."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select  p:Request from provider  d:Distribute to ward"))

	return b.String()
}

// Package waiting provides the waiting room queue and transfer views.
package waiting

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/models"
	"github.com/medboard/medboard/internal/services/transfers"
	"github.com/medboard/medboard/internal/tui/components"
)

// QueueView displays the waiting room queue one page at a time, with a
// destination picker for transferring the selected patient.
type QueueView struct {
	service  *transfers.Service
	table    *components.Table
	patients []*models.Patient
	page     int
	total    int
	pages    int
	err      error

	// picking is set while the destination list is open for the
	// selected patient.
	picking      bool
	destinations []*hospital.Ward
	destCursor   int
}

// NewQueueView creates the waiting room view.
func NewQueueView(service *transfers.Service) *QueueView {
	columns := []components.Column{
		{Title: "#", Width: 3, Align: components.AlignRight},
		{Title: "ID", Width: 5, Align: components.AlignRight},
		{Title: "Name", Width: 22},
		{Title: "Age", Width: 4, Align: components.AlignRight},
		{Title: "Severity", Width: 9},
		{Title: "Diagnosis", Width: 24},
		{Title: "Area", Width: 18},
		{Title: "Waited", Width: 6, Align: components.AlignRight},
	}

	table := components.NewTable(columns)
	table.Focus(true)

	return &QueueView{
		service: service,
		table:   table,
		page:    1,
	}
}

// SetTableStyles forwards theme styles to the embedded table.
func (v *QueueView) SetTableStyles(s components.TableStyles) {
	v.table.SetStyles(s)
}

// Load fetches the current page of waiting patients.
func (v *QueueView) Load(ctx context.Context) error {
	v.err = nil

	list, err := v.service.ListWaitingPage(ctx, v.page)
	if err != nil {
		// The page may have emptied out from under us; fall back to
		// the first page before reporting.
		if v.page > 1 {
			v.page = 1
			list, err = v.service.ListWaitingPage(ctx, v.page)
		}
		if err != nil {
			v.err = err
			return err
		}
	}

	v.patients = list.Patients
	v.total = list.Total
	v.pages = list.TotalPages

	rows := make([][]string, len(v.patients))
	for i, p := range v.patients {
		rows[i] = []string{
			fmt.Sprintf("%d", (v.page-1)*v.service.PageSize()+i+1),
			fmt.Sprintf("%d", p.ID),
			p.FullName(),
			fmt.Sprintf("%d", p.Age),
			p.Severity.String(),
			p.Diagnosis,
			p.PreferredArea,
			fmt.Sprintf("%d", p.TurnsWaited),
		}
	}

	v.table.SetRows(rows)
	v.table.SetPagination(v.page, v.pages, v.total)
	v.table.SetVisibleRows(len(rows))

	return nil
}

// NextPage advances to the next page if there is one.
func (v *QueueView) NextPage() {
	if v.page < v.pages {
		v.page++
		v.table.GotoTop()
	}
}

// PrevPage moves back one page.
func (v *QueueView) PrevPage() {
	if v.page > 1 {
		v.page--
		v.table.GotoTop()
	}
}

// MoveUp moves the selection.
func (v *QueueView) MoveUp() {
	if v.picking {
		if v.destCursor > 0 {
			v.destCursor--
		}
		return
	}
	v.table.MoveUp()
}

// MoveDown moves the selection.
func (v *QueueView) MoveDown() {
	if v.picking {
		if v.destCursor < len(v.destinations)-1 {
			v.destCursor++
		}
		return
	}
	v.table.MoveDown()
}

// Picking reports whether the destination picker is open.
func (v *QueueView) Picking() bool { return v.picking }

// SelectedPatient returns the highlighted waiting patient, or nil.
func (v *QueueView) SelectedPatient() *models.Patient {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.patients) {
		return v.patients[idx]
	}
	return nil
}

// OpenPicker opens the destination list for the selected patient.
// It is a no-op when nothing is selected or no ward can take the patient.
func (v *QueueView) OpenPicker() {
	p := v.SelectedPatient()
	if p == nil {
		return
	}
	v.destinations = v.service.Destinations(p)
	if len(v.destinations) == 0 {
		return
	}
	v.destCursor = 0
	v.picking = true
}

// ClosePicker dismisses the destination list without transferring.
func (v *QueueView) ClosePicker() {
	v.picking = false
	v.destinations = nil
}

// ConfirmTransfer moves the selected patient to the highlighted ward.
// The caller reports the outcome; on success the view reloads.
func (v *QueueView) ConfirmTransfer(ctx context.Context) (*models.Patient, string, error) {
	if !v.picking || v.destCursor >= len(v.destinations) {
		return nil, "", hospital.ErrInvalidSelection
	}
	ward := v.destinations[v.destCursor]

	idx := v.table.Selected()
	if idx < 0 {
		v.ClosePicker()
		return nil, "", hospital.ErrInvalidSelection
	}
	waitingIndex := (v.page-1)*v.service.PageSize() + idx

	p, err := v.service.TransferOne(ctx, waitingIndex, ward.Name)
	v.ClosePicker()
	if err != nil {
		return nil, ward.Name, err
	}
	if lerr := v.Load(ctx); lerr != nil {
		v.err = lerr
	}
	return p, ward.Name, nil
}

// Render draws the queue, and the destination picker when open.
func (v *QueueView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ WAITING ROOM ═══"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("In queue: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", v.total)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if len(v.patients) == 0 {
		b.WriteString(labelStyle.Render("The waiting room is empty."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
	}

	if v.picking {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Transfer to:"))
		b.WriteString("\n")
		for i, w := range v.destinations {
			line := fmt.Sprintf("  %s (%d beds free)", w.Name, w.FreeBeds())
			if i == v.destCursor {
				b.WriteString(valueStyle.Bold(true).Render("▸" + line[1:]))
			} else {
				b.WriteString(labelStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Up/Down:Choose  Enter:Confirm  Esc:Cancel"))
		return b.String()
	}

	b.WriteString("\n")
	if width < 80 {
		b.WriteString(helpStyle.Render("↑↓:Nav  Enter:Transfer  PgUp/Dn:Page"))
	} else {
		b.WriteString(helpStyle.Render("Up/Down:Select  Enter:Transfer patient  PgUp/PgDn:Page"))
	}

	return b.String()
}

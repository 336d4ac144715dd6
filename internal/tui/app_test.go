package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestAppStartsOnDashboard(t *testing.T) {
	app := newTestApp(t)

	if app.module != ModuleDashboard {
		t.Fatalf("initial module = %q, want dashboard", app.module)
	}

	view := app.View()
	if !strings.Contains(view, "DASHBOARD") {
		t.Error("dashboard view missing its title")
	}
	if !strings.Contains(view, "HOSPITAL GENERAL") {
		t.Error("header missing the hospital name")
	}
}

func TestFunctionKeyNavigation(t *testing.T) {
	tests := []struct {
		key    tea.KeyType
		module Module
		marker string
	}{
		{tea.KeyF3, ModuleWards, "WARD BOARD"},
		{tea.KeyF4, ModuleWaiting, "WAITING ROOM"},
		{tea.KeyF5, ModuleTreatment, "TREATMENT"},
		{tea.KeyF6, ModuleWarehouse, "CENTRAL WAREHOUSE"},
		{tea.KeyF7, ModuleHistory, "EVENT HISTORY"},
		{tea.KeyF1, ModuleHelp, "HELP"},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			app := newTestApp(t)
			app.Update(tea.KeyMsg{Type: tt.key})

			if app.module != tt.module {
				t.Fatalf("module = %q, want %q", app.module, tt.module)
			}
			if view := app.View(); !strings.Contains(view, tt.marker) {
				t.Errorf("view missing %q", tt.marker)
			}
		})
	}
}

func TestQuitConfirmation(t *testing.T) {
	app := newTestApp(t)

	app.Update(keyMsg("q"))
	if !app.showConfirm {
		t.Fatal("q should open the quit confirmation")
	}
	if !strings.Contains(app.View(), "Leave the hospital?") {
		t.Error("confirmation dialog not rendered")
	}

	// Any key other than y/enter stays.
	app.Update(keyMsg("n"))
	if app.showConfirm {
		t.Fatal("n should dismiss the confirmation")
	}

	app.Update(keyMsg("q"))
	_, cmd := app.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("y should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("confirming should produce a quit command")
	}
}

func TestDayCycleKeys(t *testing.T) {
	app := newTestApp(t)
	seedWaiting(t, app, 3)

	// b: with no arrival generator, nothing new shows up.
	app.Update(keyMsg("b"))
	if !app.dayOpen {
		t.Fatal("b should open the day")
	}
	if !strings.Contains(app.alert, "0 arrivals") {
		t.Errorf("alert = %q, want arrival count", app.alert)
	}

	// A second b on the same day warns instead of re-admitting.
	app.Update(keyMsg("b"))
	if !strings.Contains(app.alert, "already admitted") {
		t.Errorf("alert = %q, want double-admission warning", app.alert)
	}

	// t: one pass over the three waiting patients.
	app.Update(keyMsg("t"))
	if !strings.Contains(app.alert, "3 patients processed") {
		t.Errorf("alert = %q, want turn report", app.alert)
	}

	// e: closes the day.
	app.Update(keyMsg("e"))
	if app.svc.State.Day != 2 {
		t.Errorf("day after e = %d, want 2", app.svc.State.Day)
	}
	if app.dayOpen {
		t.Error("e should reset the day-open flag")
	}
	if !strings.Contains(app.alert, "Day 1 closed") {
		t.Errorf("alert = %q, want day close report", app.alert)
	}
}

func TestTransferFromWaitingView(t *testing.T) {
	app := newTestApp(t)
	seedWaiting(t, app, 2)

	app.Update(tea.KeyMsg{Type: tea.KeyF4})
	if !strings.Contains(app.View(), "Reyes") {
		t.Fatal("waiting view should list the seeded patients")
	}

	// Enter opens the destination picker with the preferred ward first.
	app.Update(keyMsg("enter"))
	if !app.waitingView.Picking() {
		t.Fatal("enter should open the destination picker")
	}
	if !strings.Contains(app.View(), "Transfer to:") {
		t.Error("picker not rendered")
	}

	// Enter again confirms the first destination (ICU, the preferred area).
	app.Update(keyMsg("enter"))
	if !strings.Contains(app.alert, "transferred to ICU") {
		t.Fatalf("alert = %q, want transfer confirmation", app.alert)
	}

	icu, err := app.svc.State.Lookup("ICU")
	if err != nil {
		t.Fatal(err)
	}
	if icu.PatientCount() != 1 {
		t.Errorf("ICU patients = %d, want 1", icu.PatientCount())
	}
	if app.svc.State.WaitingRoom().PatientCount() != 1 {
		t.Errorf("waiting room = %d, want 1", app.svc.State.WaitingRoom().PatientCount())
	}
	if app.svc.State.ActionsLeft != 4 {
		t.Errorf("actions left = %d, want 4", app.svc.State.ActionsLeft)
	}
}

func TestEscClosesPicker(t *testing.T) {
	app := newTestApp(t)
	seedWaiting(t, app, 1)

	app.Update(tea.KeyMsg{Type: tea.KeyF4})
	app.Update(keyMsg("enter"))
	if !app.waitingView.Picking() {
		t.Fatal("picker should be open")
	}

	app.Update(keyMsg("esc"))
	if app.waitingView.Picking() {
		t.Error("esc should close the picker")
	}
	if app.svc.State.WaitingRoom().PatientCount() != 1 {
		t.Error("cancelling must not move the patient")
	}
}

func TestWarehouseProcureForm(t *testing.T) {
	app := newTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyF6})
	app.Update(keyMsg("p"))
	if !app.warehouseView.InForm() {
		t.Fatal("p should open the procurement form")
	}

	// Typed digits go to the supply id field; q must not trigger quit
	// while a form is open.
	app.Update(keyMsg("q"))
	if app.showConfirm {
		t.Fatal("q inside a form must not open the quit dialog")
	}

	app.Update(keyMsg("esc"))
	if app.warehouseView.InForm() {
		t.Error("esc should close the form")
	}
}

func TestHeaderShowsDangerWarning(t *testing.T) {
	app := newTestApp(t)

	p := seedCritical(app)
	p.TurnsWaited = 2

	if !strings.Contains(app.View(), "near death") {
		t.Error("header should warn about critical patients close to death")
	}
}

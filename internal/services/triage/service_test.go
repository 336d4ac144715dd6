package triage

import (
	"context"
	"testing"

	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/models"
	"github.com/medboard/medboard/internal/testutil"
)

func TestAdvanceTurnEmptyWaitingRoomIsNoOp(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))

	report := svc.AdvanceTurn(context.Background())

	if report.Processed != 0 || len(report.Deaths) != 0 || len(report.Escalated) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
	if s.Deceased != 0 || s.Reputation != 0 {
		t.Errorf("counters moved on empty pass: deceased=%d reputation=%d", s.Deceased, s.Reputation)
	}
}

func TestAdvanceTurnAgesAndRotates(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))

	a := testutil.WaitingPatient(t, s, 1, models.SeverityMild)
	b := testutil.WaitingPatient(t, s, 2, models.SeverityMild)
	c := testutil.WaitingPatient(t, s, 3, models.SeverityMild)

	svc.AdvanceTurn(context.Background())

	for _, p := range []*models.Patient{a, b, c} {
		if p.TurnsWaited != 1 {
			t.Errorf("patient %d waited %d turns, want 1", p.ID, p.TurnsWaited)
		}
	}
	// Survivors keep their relative order.
	got := s.WaitingRoom().Patients()
	if got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Errorf("order after pass = %d,%d,%d", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestAdvanceTurnEscalatesCriticalEmergencyFirst(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))

	p := testutil.WaitingPatient(t, s, 1, models.SeverityCritical)

	report := svc.AdvanceTurn(context.Background())

	if len(report.Escalated) != 1 || report.Escalated[0].Ward != "Emergency" {
		t.Fatalf("escalations = %+v, want one to Emergency", report.Escalated)
	}
	emergency, _ := s.Lookup("Emergency")
	if _, ok := emergency.PatientByID(p.ID); !ok {
		t.Error("patient not in Emergency after escalation")
	}
	if s.WaitingRoom().PatientCount() != 0 {
		t.Error("patient still in waiting room after escalation")
	}
}

func TestAdvanceTurnEscalationFallsBackToICU(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))

	emergency, _ := s.Lookup("Emergency")
	for i := 0; i < emergency.PatientCapacity; i++ {
		if err := emergency.AddPatient(testutil.Patient(100+i, models.SeverityModerate)); err != nil {
			t.Fatalf("filling Emergency: %v", err)
		}
	}
	testutil.WaitingPatient(t, s, 1, models.SeverityCritical)

	report := svc.AdvanceTurn(context.Background())

	if len(report.Escalated) != 1 || report.Escalated[0].Ward != "ICU" {
		t.Fatalf("escalations = %+v, want one to ICU", report.Escalated)
	}
}

func TestAdvanceTurnCriticalDiesWhenNoBedAndPastWindow(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))

	for _, name := range []string{"Emergency", "ICU"} {
		w, _ := s.Lookup(name)
		for i := 0; i < w.PatientCapacity; i++ {
			if err := w.AddPatient(testutil.Patient(1000+len(name)*100+i, models.SeverityModerate)); err != nil {
				t.Fatalf("filling %s: %v", name, err)
			}
		}
	}

	p := testutil.WaitingPatient(t, s, 1, models.SeverityCritical)
	p.TurnsWaited = 2 // aging makes this 3, past the critical window

	report := svc.AdvanceTurn(context.Background())

	if len(report.Deaths) != 1 || report.Deaths[0].ID != 1 {
		t.Fatalf("deaths = %+v, want patient 1", report.Deaths)
	}
	if s.Deceased != 1 {
		t.Errorf("Deceased = %d, want 1", s.Deceased)
	}
	if s.Reputation != -2 {
		t.Errorf("Reputation = %d, want -2", s.Reputation)
	}
	if s.WaitingRoom().PatientCount() != 0 {
		t.Error("dead patient still in waiting room")
	}
}

func TestModeratePatientMortalityWindow(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	p := testutil.WaitingPatient(t, s, 1, models.SeverityModerate)
	p.TurnsWaited = 3 // has survived three turns; the next pass is fatal

	report := svc.AdvanceTurn(ctx)

	if len(report.Deaths) != 1 {
		t.Fatalf("deaths = %+v, want 1", report.Deaths)
	}
	if p.TurnsWaited != 4 {
		t.Errorf("TurnsWaited = %d, want 4", p.TurnsWaited)
	}
}

func TestModerateSurvivesThreeFullTurns(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	testutil.WaitingPatient(t, s, 1, models.SeverityModerate)

	for turn := 1; turn <= 3; turn++ {
		report := svc.AdvanceTurn(ctx)
		if len(report.Deaths) != 0 {
			t.Fatalf("moderate patient died on turn %d", turn)
		}
	}
	report := svc.AdvanceTurn(ctx)
	if len(report.Deaths) != 1 {
		t.Error("moderate patient should die on the fourth pass")
	}
}

func TestMildPatientsWaitIndefinitely(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	testutil.WaitingPatient(t, s, 1, models.SeverityMild)

	for turn := 0; turn < 20; turn++ {
		if report := svc.AdvanceTurn(ctx); len(report.Deaths) != 0 {
			t.Fatalf("mild patient died on turn %d", turn)
		}
	}
	if s.WaitingRoom().PatientCount() != 1 {
		t.Error("mild patient left the waiting room")
	}
}

func TestRunEndOfDay(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	testutil.StockWarehouse(t, s, 1001, 50)
	testutil.StockWarehouse(t, s, 1005, 195)
	wh := s.Warehouse()
	e1, _ := wh.LedgerEntry(1001)
	e1.WithdrawnToday = 20
	e2, _ := wh.LedgerEntry(1005)

	s.ActionsLeft = 0
	s.Reputation = 1

	summary := svc.RunEndOfDay(ctx)

	if summary.ClosedDay != 1 || s.Day != 2 {
		t.Errorf("ClosedDay=%d Day=%d, want 1 and 2", summary.ClosedDay, s.Day)
	}
	if e1.WithdrawnToday != 0 {
		t.Errorf("WithdrawnToday = %d, want 0", e1.WithdrawnToday)
	}
	if e1.TotalOnHand != 60 {
		t.Errorf("replenished 1001 = %d, want 60", e1.TotalOnHand)
	}
	// Replenishment caps at the configured maximum.
	if e2.TotalOnHand != 200 {
		t.Errorf("replenished 1005 = %d, want 200", e2.TotalOnHand)
	}
	if summary.Replenished != 2 {
		t.Errorf("Replenished = %d, want 2", summary.Replenished)
	}
	// Action pool recomputed from reputation.
	if s.ActionsLeft != 6 {
		t.Errorf("ActionsLeft = %d, want 6", s.ActionsLeft)
	}
	if summary.Stats.Day != 2 {
		t.Errorf("Stats.Day = %d, want 2", summary.Stats.Day)
	}
}

func TestRunEndOfDayIncludesAgingPass(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))

	p := testutil.WaitingPatient(t, s, 1, models.SeverityMild)

	svc.RunEndOfDay(context.Background())

	if p.TurnsWaited != 1 {
		t.Errorf("TurnsWaited = %d, want 1", p.TurnsWaited)
	}
}

func TestEscalationWardOrderIsConfigurable(t *testing.T) {
	policy := hospital.DefaultPolicy()
	policy.EscalationWards = []string{"ICU"}
	s, err := hospital.NewState(hospital.DefaultTopology(), policy)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	svc := NewService(s, nil)

	if err := s.WaitingRoom().AddPatient(testutil.Patient(1, models.SeverityCritical)); err != nil {
		t.Fatalf("AddPatient: %v", err)
	}

	report := svc.AdvanceTurn(context.Background())
	if len(report.Escalated) != 1 || report.Escalated[0].Ward != "ICU" {
		t.Fatalf("escalations = %+v, want one to ICU", report.Escalated)
	}
}

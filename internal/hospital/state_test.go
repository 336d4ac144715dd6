package hospital

import (
	"errors"
	"testing"

	"github.com/medboard/medboard/internal/models"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := NewState(DefaultTopology(), DefaultPolicy())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func TestNewStateTopologyValidation(t *testing.T) {
	tests := []struct {
		name  string
		specs []WardSpec
	}{
		{
			name: "duplicate ward name",
			specs: []WardSpec{
				{Name: "Waiting Room", Kind: KindWaiting, PatientCapacity: 999},
				{Name: "ICU", Kind: KindClinical, PatientCapacity: 10},
				{Name: "ICU", Kind: KindClinical, PatientCapacity: 10},
				{Name: "Central Warehouse", Kind: KindWarehouse, SupplyCapacity: 200},
			},
		},
		{
			name: "missing waiting room",
			specs: []WardSpec{
				{Name: "ICU", Kind: KindClinical, PatientCapacity: 10},
				{Name: "Central Warehouse", Kind: KindWarehouse, SupplyCapacity: 200},
			},
		},
		{
			name: "missing warehouse",
			specs: []WardSpec{
				{Name: "Waiting Room", Kind: KindWaiting, PatientCapacity: 999},
				{Name: "ICU", Kind: KindClinical, PatientCapacity: 10},
			},
		},
		{
			name: "two warehouses",
			specs: []WardSpec{
				{Name: "Waiting Room", Kind: KindWaiting, PatientCapacity: 999},
				{Name: "Central Warehouse", Kind: KindWarehouse, SupplyCapacity: 200},
				{Name: "Annex", Kind: KindWarehouse, SupplyCapacity: 200},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewState(tt.specs, DefaultPolicy()); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestDailyQuota(t *testing.T) {
	tests := []struct {
		name       string
		reputation int
		want       int
	}{
		{"fresh hospital", 0, 50},
		{"reputation two", 2, 60},
		{"reputation collapsed", -11, 0},
		{"exactly zero", -10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			s.Reputation = tt.reputation
			if got := s.DailyQuota(); got != tt.want {
				t.Errorf("DailyQuota() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDailyActionsNeverBelowOne(t *testing.T) {
	s := newTestState(t)
	s.Reputation = -20
	if got := s.DailyActions(); got != 1 {
		t.Errorf("DailyActions() = %d, want 1", got)
	}
	s.Reputation = 3
	if got := s.DailyActions(); got != 8 {
		t.Errorf("DailyActions() = %d, want 8", got)
	}
}

func TestSpendAction(t *testing.T) {
	s := newTestState(t)
	s.ActionsLeft = 1
	if err := s.SpendAction(); err != nil {
		t.Fatalf("SpendAction: %v", err)
	}
	if err := s.SpendAction(); !errors.Is(err, ErrNoBudget) {
		t.Errorf("SpendAction on empty pool = %v, want ErrNoBudget", err)
	}
}

func TestEnqueueArrivalAssignsSequentialIDs(t *testing.T) {
	s := newTestState(t)
	s.EnqueueArrival(&models.Patient{ID: 40})
	s.EnqueueArrival(&models.Patient{})
	s.EnqueueArrival(&models.Patient{})

	first := s.DequeueArrival()
	second := s.DequeueArrival()
	third := s.DequeueArrival()
	if first.ID != 40 || second.ID != 41 || third.ID != 42 {
		t.Errorf("ids = %d,%d,%d, want 40,41,42", first.ID, second.ID, third.ID)
	}
	if s.DequeueArrival() != nil {
		t.Error("DequeueArrival on empty backlog should return nil")
	}
}

func TestWardPatientCapacity(t *testing.T) {
	w := NewWard("ICU", KindClinical, 2, 10)
	for i := 1; i <= 2; i++ {
		if err := w.AddPatient(&models.Patient{ID: i}); err != nil {
			t.Fatalf("AddPatient(%d): %v", i, err)
		}
	}
	if err := w.AddPatient(&models.Patient{ID: 3}); !errors.Is(err, ErrWardFull) {
		t.Errorf("AddPatient over capacity = %v, want ErrWardFull", err)
	}
	if w.FreeBeds() != 0 {
		t.Errorf("FreeBeds() = %d, want 0", w.FreeBeds())
	}
}

func TestWardConsumeStock(t *testing.T) {
	w := NewWard("ICU", KindClinical, 10, 10)
	if err := w.AddStock(1001, 5); err != nil {
		t.Fatalf("AddStock: %v", err)
	}

	if err := w.ConsumeStock(1001, 7); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("over-consume = %v, want ErrInsufficientStock", err)
	}
	if qty, _ := w.StockQuantity(1001); qty != 5 {
		t.Errorf("failed consume mutated stock: %d", qty)
	}

	if err := w.ConsumeStock(1001, 5); err != nil {
		t.Fatalf("ConsumeStock: %v", err)
	}
	if _, ok := w.StockQuantity(1001); ok {
		t.Error("record should be removed when quantity hits zero")
	}

	if err := w.ConsumeStock(9999, 1); !errors.Is(err, ErrSupplyNotFound) {
		t.Errorf("unknown supply = %v, want ErrSupplyNotFound", err)
	}
	if err := w.ConsumeStock(1001, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity = %v, want ErrInvalidQuantity", err)
	}
}

func TestWarehouseLedger(t *testing.T) {
	s := newTestState(t)
	wh := s.Warehouse()

	if err := wh.CreditLedger(1001, 30); err != nil {
		t.Fatalf("CreditLedger: %v", err)
	}
	if err := wh.CreditLedger(1001, 20); err != nil {
		t.Fatalf("CreditLedger top-up: %v", err)
	}
	e, ok := wh.LedgerEntry(1001)
	if !ok || e.TotalOnHand != 50 {
		t.Fatalf("LedgerEntry = %+v, ok=%v, want 50 on hand", e, ok)
	}

	if err := wh.CreditLedger(1002, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero credit = %v, want ErrInvalidQuantity", err)
	}

	icu, _ := s.Lookup("ICU")
	if err := icu.CreditLedger(1001, 5); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("ledger credit on clinical ward = %v, want ErrInvalidSelection", err)
	}
}

func TestResetDailyBudgets(t *testing.T) {
	s := newTestState(t)
	wh := s.Warehouse()
	if err := wh.CreditLedger(1001, 100); err != nil {
		t.Fatalf("CreditLedger: %v", err)
	}
	e, _ := wh.LedgerEntry(1001)
	e.WithdrawnToday = 37
	s.ActionsLeft = 0
	s.QuotaLeft = 3
	s.Reputation = 2

	s.ResetDailyBudgets()

	if e.WithdrawnToday != 0 {
		t.Errorf("WithdrawnToday = %d, want 0", e.WithdrawnToday)
	}
	if s.ActionsLeft != 7 {
		t.Errorf("ActionsLeft = %d, want 7", s.ActionsLeft)
	}
	if s.QuotaLeft != 60 {
		t.Errorf("QuotaLeft = %d, want 60", s.QuotaLeft)
	}
}

func TestSpendQuota(t *testing.T) {
	s := newTestState(t)

	if err := s.SpendQuota(50); err != nil {
		t.Fatalf("SpendQuota at the limit: %v", err)
	}
	if err := s.SpendQuota(1); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("SpendQuota past the limit = %v, want ErrQuotaExceeded", err)
	}
	s.RefundQuota(10)
	if s.QuotaLeft != 10 {
		t.Errorf("QuotaLeft after refund = %d, want 10", s.QuotaLeft)
	}
}

func TestStatistics(t *testing.T) {
	s := newTestState(t)
	s.Cured, s.Deceased, s.Reputation = 4, 1, 2
	s.waiting.AddPatient(&models.Patient{ID: 1, Severity: models.SeverityCritical, TurnsWaited: 2})
	s.waiting.AddPatient(&models.Patient{ID: 2, Severity: models.SeverityMild})
	icu, _ := s.Lookup("ICU")
	icu.AddPatient(&models.Patient{ID: 3, Severity: models.SeverityCritical})
	s.EnqueueArrival(&models.Patient{})

	st := s.Statistics()
	if st.Waiting != 2 || st.Critical != 2 || st.InDanger != 1 || st.IntakeBacklog != 1 {
		t.Errorf("Statistics = %+v", st)
	}
	// The pool was sized at day open, before the reputation gain.
	if st.QuotaLeft != 50 {
		t.Errorf("QuotaLeft = %d, want 50", st.QuotaLeft)
	}
}

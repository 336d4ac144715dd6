package warehouse

import (
	"context"
	"errors"
	"testing"

	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/testutil"
)

func TestRequestFromProviderTopUp(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	testutil.StockWarehouse(t, s, 1001, 40)

	if err := svc.RequestFromProvider(ctx, ProcureInput{SupplyID: 1001, Quantity: 60}); err != nil {
		t.Fatalf("RequestFromProvider: %v", err)
	}
	entry, _ := s.Warehouse().LedgerEntry(1001)
	if entry.TotalOnHand != 100 {
		t.Errorf("on hand = %d, want 100", entry.TotalOnHand)
	}
}

func TestRequestFromProviderRegistersNewSupply(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	input := ProcureInput{SupplyID: 2001, Quantity: 30, Name: "Saline", Category: "fluid"}
	if err := svc.RequestFromProvider(ctx, input); err != nil {
		t.Fatalf("RequestFromProvider: %v", err)
	}

	sup, err := s.SupplyByID(2001)
	if err != nil {
		t.Fatalf("new supply not in catalog: %v", err)
	}
	if sup.Name != "Saline" {
		t.Errorf("catalog name = %s", sup.Name)
	}
	entry, ok := s.Warehouse().LedgerEntry(2001)
	if !ok || entry.TotalOnHand != 30 {
		t.Errorf("ledger = %+v, ok=%v", entry, ok)
	}

	// Unknown id without a name cannot be registered.
	err = svc.RequestFromProvider(ctx, ProcureInput{SupplyID: 2002, Quantity: 5})
	if !errors.Is(err, hospital.ErrSupplyNotFound) {
		t.Errorf("err = %v, want ErrSupplyNotFound", err)
	}
}

func TestRequestFromProviderRejectsNonPositiveQuantity(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, nil)

	for _, qty := range []int{0, -5} {
		err := svc.RequestFromProvider(context.Background(), ProcureInput{SupplyID: 1001, Quantity: qty})
		if !errors.Is(err, hospital.ErrInvalidQuantity) {
			t.Errorf("quantity %d: err = %v, want ErrInvalidQuantity", qty, err)
		}
	}
}

func TestDistributeToWard(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	testutil.StockWarehouse(t, s, 1001, 100)

	if err := svc.DistributeToWard(ctx, "ICU", 1001, 30); err != nil {
		t.Fatalf("DistributeToWard: %v", err)
	}

	entry, _ := s.Warehouse().LedgerEntry(1001)
	if entry.TotalOnHand != 70 || entry.WithdrawnToday != 30 {
		t.Errorf("ledger = %+v, want 70 on hand, 30 withdrawn", entry)
	}
	icu, _ := s.Lookup("ICU")
	if qty, _ := icu.StockQuantity(1001); qty != 30 {
		t.Errorf("ICU stock = %d, want 30", qty)
	}

	// Second delivery tops up the existing ward record.
	if err := svc.DistributeToWard(ctx, "ICU", 1001, 10); err != nil {
		t.Fatalf("second DistributeToWard: %v", err)
	}
	if qty, _ := icu.StockQuantity(1001); qty != 40 {
		t.Errorf("ICU stock = %d, want 40", qty)
	}
}

func TestDistributeQuotaScalesWithReputation(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	testutil.StockWarehouse(t, s, 1001, 200)
	s.Reputation = 2
	s.ResetDailyBudgets() // day opens at rep 2: pool 50 + 2*5 = 60

	if err := svc.DistributeToWard(ctx, "ICU", 1001, 60); err != nil {
		t.Fatalf("withdrawal at quota: %v", err)
	}
	err := svc.DistributeToWard(ctx, "ICU", 1001, 1)
	if !errors.Is(err, hospital.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
	if got := svc.QuotaRemaining(); got != 0 {
		t.Errorf("QuotaRemaining = %d, want 0", got)
	}
}

func TestDistributeQuotaIsSharedAcrossSupplies(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	testutil.StockWarehouse(t, s, 1001, 200)
	testutil.StockWarehouse(t, s, 1005, 200)
	s.Reputation = 2
	s.ResetDailyBudgets()

	// One pool of 60 covers every supply, not 60 each.
	if err := svc.DistributeToWard(ctx, "ICU", 1001, 60); err != nil {
		t.Fatalf("first supply at quota: %v", err)
	}
	err := svc.DistributeToWard(ctx, "ICU", 1005, 1)
	if !errors.Is(err, hospital.ErrQuotaExceeded) {
		t.Fatalf("second supply: err = %v, want ErrQuotaExceeded", err)
	}
	entry, _ := s.Warehouse().LedgerEntry(1005)
	if entry.TotalOnHand != 200 || entry.WithdrawnToday != 0 {
		t.Errorf("second supply ledger touched on failure: %+v", entry)
	}
}

func TestDistributeQuotaFixedAtDayOpen(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	testutil.StockWarehouse(t, s, 1001, 200)

	if err := svc.DistributeToWard(ctx, "ICU", 1001, 50); err != nil {
		t.Fatalf("withdrawal at quota: %v", err)
	}

	// A mid-day reputation gain does not widen today's pool.
	s.Reputation = 1
	err := svc.DistributeToWard(ctx, "ICU", 1001, 5)
	if !errors.Is(err, hospital.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}

	// The next day opens with the recomputed pool.
	s.ResetDailyBudgets()
	if got := svc.QuotaRemaining(); got != 55 {
		t.Errorf("pool after day open = %d, want 55", got)
	}
	if err := svc.DistributeToWard(ctx, "ICU", 1001, 55); err != nil {
		t.Errorf("withdrawal at the new quota: %v", err)
	}
}

func TestDistributeErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, s *hospital.State)
		ward    string
		supply  int
		qty     int
		wantErr error
	}{
		{
			name:    "zero quantity",
			setup:   func(t *testing.T, s *hospital.State) {},
			ward:    "ICU",
			supply:  1001,
			qty:     0,
			wantErr: hospital.ErrInvalidQuantity,
		},
		{
			name:    "unknown ward",
			setup:   func(t *testing.T, s *hospital.State) {},
			ward:    "Oncology",
			supply:  1001,
			qty:     5,
			wantErr: hospital.ErrWardNotFound,
		},
		{
			name:    "waiting room cannot receive stock",
			setup:   func(t *testing.T, s *hospital.State) {},
			ward:    "Waiting Room",
			supply:  1001,
			qty:     5,
			wantErr: hospital.ErrInvalidSelection,
		},
		{
			name:    "supply not in ledger",
			setup:   func(t *testing.T, s *hospital.State) {},
			ward:    "ICU",
			supply:  9999,
			qty:     5,
			wantErr: hospital.ErrSupplyNotFound,
		},
		{
			name: "more than on hand",
			setup: func(t *testing.T, s *hospital.State) {
				testutil.StockWarehouse(t, s, 1001, 10)
			},
			ward:    "ICU",
			supply:  1001,
			qty:     20,
			wantErr: hospital.ErrInsufficientWarehouseStock,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.NewState(t)
			svc := NewService(s, testutil.NewJournal(t))
			tt.setup(t, s)

			err := svc.DistributeToWard(context.Background(), tt.ward, tt.supply, tt.qty)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}

			// Nothing moved on failure.
			if entry, ok := s.Warehouse().LedgerEntry(tt.supply); ok && entry.WithdrawnToday != 0 {
				t.Error("failed distribution burned quota")
			}
		})
	}
}

func TestDistributeRollsBackWhenShelvesFull(t *testing.T) {
	s := testutil.NewState(t)
	svc := NewService(s, testutil.NewJournal(t))
	ctx := context.Background()

	// Fill every ICU shelf slot with distinct supplies.
	icu, _ := s.Lookup("ICU")
	for id := 1; id <= icu.SupplyCapacity; id++ {
		if err := icu.AddStock(id, 1); err != nil {
			t.Fatalf("filling shelves: %v", err)
		}
	}
	testutil.StockWarehouse(t, s, 5001, 50)

	err := svc.DistributeToWard(ctx, "ICU", 5001, 10)
	if !errors.Is(err, hospital.ErrInsufficientStock) {
		t.Fatalf("err = %v, want shelf-space failure", err)
	}
	entry, _ := s.Warehouse().LedgerEntry(5001)
	if entry.TotalOnHand != 50 || entry.WithdrawnToday != 0 {
		t.Errorf("ledger after rollback = %+v", entry)
	}
	if got := svc.QuotaRemaining(); got != 50 {
		t.Errorf("QuotaRemaining after rollback = %d, want 50", got)
	}
}

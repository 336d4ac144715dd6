// Package testutil provides utilities for testing.
package testutil

import (
	"testing"

	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/models"
)

// NewState builds a hospital with the stock topology and default policy.
func NewState(t *testing.T) *hospital.State {
	t.Helper()
	s, err := hospital.NewState(hospital.DefaultTopology(), hospital.DefaultPolicy())
	if err != nil {
		t.Fatalf("building test state: %v", err)
	}
	return s
}

// NewJournal opens an in-memory journal, closed when the test ends.
func NewJournal(t *testing.T) *journal.Journal {
	t.Helper()
	j, err := journal.NewInMemory()
	if err != nil {
		t.Fatalf("opening test journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

// Patient builds a minimal valid patient.
func Patient(id int, severity models.Severity) *models.Patient {
	return &models.Patient{
		ID:               id,
		Name:             "Test",
		Surname:          "Patient",
		Age:              40,
		Diagnosis:        "test condition",
		Severity:         severity,
		RequiredSupplyID: 1001,
		RequiredQuantity: 2,
	}
}

// WaitingPatient builds a patient and places them in the waiting room.
func WaitingPatient(t *testing.T, s *hospital.State, id int, severity models.Severity) *models.Patient {
	t.Helper()
	p := Patient(id, severity)
	if err := s.WaitingRoom().AddPatient(p); err != nil {
		t.Fatalf("adding waiting patient %d: %v", id, err)
	}
	return p
}

// StockWarehouse registers a supply and credits the warehouse ledger.
func StockWarehouse(t *testing.T, s *hospital.State, supplyID, qty int) {
	t.Helper()
	s.RegisterSupply(&models.Supply{ID: supplyID, Name: "Test Supply", Location: s.Warehouse().Name})
	if err := s.Warehouse().CreditLedger(supplyID, qty); err != nil {
		t.Fatalf("stocking warehouse with %d: %v", supplyID, err)
	}
}

// StockWard registers a supply and places quantity on a ward's shelf.
func StockWard(t *testing.T, s *hospital.State, wardName string, supplyID, qty int) {
	t.Helper()
	w, err := s.Lookup(wardName)
	if err != nil {
		t.Fatalf("looking up ward %s: %v", wardName, err)
	}
	s.RegisterSupply(&models.Supply{ID: supplyID, Name: "Test Supply", Location: wardName})
	if err := w.AddStock(supplyID, qty); err != nil {
		t.Fatalf("stocking %s with %d: %v", wardName, supplyID, err)
	}
}

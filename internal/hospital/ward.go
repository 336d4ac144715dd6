package hospital

import (
	"fmt"

	"github.com/medboard/medboard/internal/models"
)

// WardKind distinguishes the three roles a ward can play. Clinical wards
// admit and treat patients; the waiting room holds arrivals that have not
// been admitted; the warehouse holds no patients and owns the stock ledger.
type WardKind string

const (
	KindClinical  WardKind = "clinical"
	KindWaiting   WardKind = "waiting"
	KindWarehouse WardKind = "warehouse"
)

func (k WardKind) Valid() bool {
	switch k {
	case KindClinical, KindWaiting, KindWarehouse:
		return true
	}
	return false
}

// Ward is a named unit with bounded patient beds and bounded supply shelf
// space. Patients are kept in admission order. Ward-local stock records
// carry quantities only; supply metadata lives in the state catalog. A
// stock record at quantity zero is removed rather than kept.
type Ward struct {
	Name            string
	Kind            WardKind
	PatientCapacity int
	SupplyCapacity  int

	patients []*models.Patient
	stock    []models.WardStock

	// ledger is populated only for the warehouse ward.
	ledger    []*models.StockEntry
	ledgerIdx map[int]*models.StockEntry
}

// NewWard builds an empty ward. Warehouse wards get an empty ledger.
func NewWard(name string, kind WardKind, patientCap, supplyCap int) *Ward {
	w := &Ward{
		Name:            name,
		Kind:            kind,
		PatientCapacity: patientCap,
		SupplyCapacity:  supplyCap,
	}
	if kind == KindWarehouse {
		w.ledgerIdx = make(map[int]*models.StockEntry)
	}
	return w
}

func (w *Ward) PatientCount() int { return len(w.patients) }

// FreeBeds reports remaining patient capacity.
func (w *Ward) FreeBeds() int { return w.PatientCapacity - len(w.patients) }

// Patients returns the ward's patients in admission order. The slice is
// shared; callers must not mutate it.
func (w *Ward) Patients() []*models.Patient { return w.patients }

// AddPatient appends a patient, enforcing capacity.
func (w *Ward) AddPatient(p *models.Patient) error {
	if len(w.patients) >= w.PatientCapacity {
		return fmt.Errorf("%s: %w", w.Name, ErrWardFull)
	}
	w.patients = append(w.patients, p)
	return nil
}

// PopFrontPatient removes and returns the oldest patient, or nil when the
// ward is empty.
func (w *Ward) PopFrontPatient() *models.Patient {
	if len(w.patients) == 0 {
		return nil
	}
	p := w.patients[0]
	w.patients = w.patients[1:]
	return p
}

// RemovePatientAt removes the patient at the given zero-based position,
// preserving the order of the rest.
func (w *Ward) RemovePatientAt(i int) (*models.Patient, error) {
	if i < 0 || i >= len(w.patients) {
		return nil, ErrInvalidSelection
	}
	p := w.patients[i]
	w.patients = append(w.patients[:i], w.patients[i+1:]...)
	return p, nil
}

// PatientByID finds a patient in this ward.
func (w *Ward) PatientByID(id int) (*models.Patient, bool) {
	for _, p := range w.patients {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// StockQuantity reports the ward-local quantity for a supply, false when
// the ward holds none of it.
func (w *Ward) StockQuantity(supplyID int) (int, bool) {
	for _, s := range w.stock {
		if s.SupplyID == supplyID {
			return s.Quantity, true
		}
	}
	return 0, false
}

// Stock returns the ward-local stock records. Shared slice; read only.
func (w *Ward) Stock() []models.WardStock { return w.stock }

// AddStock credits a supply to the ward, creating the record on first
// receipt.
func (w *Ward) AddStock(supplyID, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range w.stock {
		if w.stock[i].SupplyID == supplyID {
			w.stock[i].Quantity += qty
			return nil
		}
	}
	if len(w.stock) >= w.SupplyCapacity {
		return fmt.Errorf("%s shelf space: %w", w.Name, ErrInsufficientStock)
	}
	w.stock = append(w.stock, models.WardStock{SupplyID: supplyID, Quantity: qty})
	return nil
}

// ConsumeStock debits a supply from the ward. The record disappears when
// the quantity reaches exactly zero.
func (w *Ward) ConsumeStock(supplyID, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range w.stock {
		if w.stock[i].SupplyID != supplyID {
			continue
		}
		if w.stock[i].Quantity < qty {
			return fmt.Errorf("supply %d in %s: %w", supplyID, w.Name, ErrInsufficientStock)
		}
		w.stock[i].Quantity -= qty
		if w.stock[i].Quantity == 0 {
			w.stock = append(w.stock[:i], w.stock[i+1:]...)
		}
		return nil
	}
	return fmt.Errorf("supply %d in %s: %w", supplyID, w.Name, ErrSupplyNotFound)
}

// LedgerEntries returns the warehouse ledger in registration order. Nil
// for non-warehouse wards.
func (w *Ward) LedgerEntries() []*models.StockEntry { return w.ledger }

// LedgerEntry looks up the ledger record for a supply.
func (w *Ward) LedgerEntry(supplyID int) (*models.StockEntry, bool) {
	if w.ledgerIdx == nil {
		return nil, false
	}
	e, ok := w.ledgerIdx[supplyID]
	return e, ok
}

// CreditLedger adds stock to the warehouse ledger, creating the entry on
// the first delivery of a supply.
func (w *Ward) CreditLedger(supplyID, qty int) error {
	if w.Kind != KindWarehouse {
		return fmt.Errorf("%s is not a warehouse: %w", w.Name, ErrInvalidSelection)
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if e, ok := w.ledgerIdx[supplyID]; ok {
		e.TotalOnHand += qty
		return nil
	}
	e := &models.StockEntry{SupplyID: supplyID, TotalOnHand: qty}
	w.ledger = append(w.ledger, e)
	w.ledgerIdx[supplyID] = e
	return nil
}

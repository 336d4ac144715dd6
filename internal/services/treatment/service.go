// Package treatment cures admitted patients by consuming their required
// supply.
package treatment

import (
	"context"
	"fmt"

	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/models"
)

// Service provides cure operations.
type Service struct {
	state   *hospital.State
	journal *journal.Journal
}

// NewService creates a new treatment service.
func NewService(state *hospital.State, j *journal.Journal) *Service {
	return &Service{state: state, journal: j}
}

// TreatableWards returns the clinical wards currently holding patients,
// in registry order.
func (s *Service) TreatableWards() []*hospital.Ward {
	var out []*hospital.Ward
	for _, w := range s.state.ClinicalWards() {
		if w.PatientCount() > 0 {
			out = append(out, w)
		}
	}
	return out
}

// Treat cures the patient at the given index of the named ward. The
// required supply is debited all-or-nothing from the ward's own shelf, or
// from the warehouse ledger when policy says so. A cure discharges the
// patient, counts toward cured, raises reputation by one and burns one
// daily action. Failures leave everything untouched.
func (s *Service) Treat(ctx context.Context, wardName string, patientIndex int) (*models.Patient, error) {
	if s.state.ActionsLeft <= 0 {
		return nil, fmt.Errorf("treat: %w", hospital.ErrNoBudget)
	}

	ward, err := s.state.Lookup(wardName)
	if err != nil {
		return nil, fmt.Errorf("treat: %w", err)
	}
	if ward.Kind != hospital.KindClinical {
		return nil, fmt.Errorf("%s holds no treatable patients: %w", wardName, hospital.ErrInvalidSelection)
	}

	patients := ward.Patients()
	if patientIndex < 0 || patientIndex >= len(patients) {
		return nil, fmt.Errorf("patient %d in %s: %w", patientIndex, wardName, hospital.ErrInvalidSelection)
	}
	p := patients[patientIndex]

	if err := s.consume(ward, p); err != nil {
		return nil, err
	}

	if _, err := ward.RemovePatientAt(patientIndex); err != nil {
		return nil, fmt.Errorf("treat: %w", err)
	}
	s.state.Cured++
	s.state.Reputation++
	if err := s.state.SpendAction(); err != nil {
		return nil, fmt.Errorf("treat: %w", err)
	}

	s.journal.Record(ctx, journal.Event{
		Day:       s.state.Day,
		Type:      journal.EventCure,
		PatientID: p.ID,
		Ward:      ward.Name,
		SupplyID:  p.RequiredSupplyID,
		Quantity:  p.RequiredQuantity,
		Detail:    fmt.Sprintf("%s cured of %s", p.FullName(), p.Diagnosis),
	})
	return p, nil
}

// consume debits the required supply from the configured source. The
// supply must be stocked at the source even when the required quantity is
// zero; a zero-dose prescription still names a real supply.
func (s *Service) consume(ward *hospital.Ward, p *models.Patient) error {
	if s.state.Policy.TreatmentSource == hospital.SourceWarehouse {
		entry, ok := s.state.Warehouse().LedgerEntry(p.RequiredSupplyID)
		if !ok {
			return fmt.Errorf("supply %d: %w", p.RequiredSupplyID, hospital.ErrSupplyNotFound)
		}
		if p.RequiredQuantity == 0 {
			return nil
		}
		if entry.TotalOnHand < p.RequiredQuantity {
			return fmt.Errorf("supply %d: %w", p.RequiredSupplyID, hospital.ErrInsufficientStock)
		}
		entry.TotalOnHand -= p.RequiredQuantity
		return nil
	}

	if _, ok := ward.StockQuantity(p.RequiredSupplyID); !ok {
		return fmt.Errorf("supply %d in %s: %w", p.RequiredSupplyID, ward.Name, hospital.ErrSupplyNotFound)
	}
	if p.RequiredQuantity == 0 {
		return nil
	}
	if err := ward.ConsumeStock(p.RequiredSupplyID, p.RequiredQuantity); err != nil {
		return err
	}
	return nil
}

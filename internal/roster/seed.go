package roster

import (
	"log/slog"

	"github.com/medboard/medboard/internal/hospital"
)

// Seed applies loaded rosters to a fresh hospital state. Patients enter
// the waiting room in roster order. Supplies register in the catalog;
// stocked rows credit the warehouse ledger, or a clinical ward's shelf
// when the row names one.
func Seed(s *hospital.State, pr *PatientResult, sr *SupplyResult) {
	if pr != nil {
		for _, p := range pr.Patients {
			s.SeedWaitingRoom(p)
		}
	}

	if sr == nil {
		return
	}
	for _, row := range sr.Rows {
		sup := row.Supply
		s.RegisterSupply(&sup)
		if row.Quantity <= 0 {
			continue
		}

		target := s.Warehouse()
		if w, err := s.Lookup(sup.Location); err == nil && w.Kind == hospital.KindClinical {
			if err := w.AddStock(sup.ID, row.Quantity); err != nil {
				slog.Warn("seeding ward stock failed, routing to warehouse",
					"supply", sup.ID, "ward", w.Name, "error", err)
			} else {
				continue
			}
		}
		if err := target.CreditLedger(sup.ID, row.Quantity); err != nil {
			slog.Warn("seeding warehouse ledger failed", "supply", sup.ID, "error", err)
		}
	}
}

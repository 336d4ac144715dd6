// Package warehouse handles provider procurement and quota-bounded
// distribution of supplies to wards.
package warehouse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/models"
)

// Service provides warehouse operations.
type Service struct {
	state   *hospital.State
	journal *journal.Journal
}

// NewService creates a new warehouse service.
func NewService(state *hospital.State, j *journal.Journal) *Service {
	return &Service{state: state, journal: j}
}

// ProcureInput describes a provider request. Name and Category are only
// used when the supply id is new to the catalog.
type ProcureInput struct {
	SupplyID int
	Quantity int
	Name     string
	Category string
}

// RequestFromProvider credits the warehouse ledger from the unlimited
// provider. Unknown supply ids are registered in the catalog first.
func (s *Service) RequestFromProvider(ctx context.Context, input ProcureInput) error {
	if input.Quantity <= 0 {
		return fmt.Errorf("procurement: %w", hospital.ErrInvalidQuantity)
	}

	if _, err := s.state.SupplyByID(input.SupplyID); err != nil {
		if input.Name == "" {
			return fmt.Errorf("procurement of unknown supply %d needs a name: %w",
				input.SupplyID, hospital.ErrSupplyNotFound)
		}
		s.state.RegisterSupply(&models.Supply{
			ID:       input.SupplyID,
			Name:     input.Name,
			Category: input.Category,
			Location: s.state.Warehouse().Name,
		})
		slog.Info("registered new supply from provider", "supply", input.SupplyID, "name", input.Name)
	}

	if err := s.state.Warehouse().CreditLedger(input.SupplyID, input.Quantity); err != nil {
		return fmt.Errorf("procurement: %w", err)
	}

	s.journal.Record(ctx, journal.Event{
		Day:      s.state.Day,
		Type:     journal.EventProcurement,
		SupplyID: input.SupplyID,
		Quantity: input.Quantity,
		Ward:     s.state.Warehouse().Name,
		Detail:   fmt.Sprintf("provider delivered %d of supply %d", input.Quantity, input.SupplyID),
	})
	return nil
}

// DistributeToWard moves stock from the warehouse ledger onto a clinical
// ward's shelf, bounded by the day's shared withdrawal pool. Failures
// leave both sides untouched.
func (s *Service) DistributeToWard(ctx context.Context, wardName string, supplyID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("distribution: %w", hospital.ErrInvalidQuantity)
	}

	ward, err := s.state.Lookup(wardName)
	if err != nil {
		return fmt.Errorf("distribution: %w", err)
	}
	if ward.Kind != hospital.KindClinical {
		return fmt.Errorf("%s cannot receive distributions: %w", wardName, hospital.ErrInvalidSelection)
	}

	entry, ok := s.state.Warehouse().LedgerEntry(supplyID)
	if !ok {
		return fmt.Errorf("supply %d: %w", supplyID, hospital.ErrSupplyNotFound)
	}

	if entry.TotalOnHand < qty {
		return fmt.Errorf("supply %d has %d on hand: %w",
			supplyID, entry.TotalOnHand, hospital.ErrInsufficientWarehouseStock)
	}
	if err := s.state.SpendQuota(qty); err != nil {
		return fmt.Errorf("distributing %d with %d quota left today: %w",
			qty, s.state.QuotaLeft, err)
	}

	entry.TotalOnHand -= qty
	entry.WithdrawnToday += qty
	if err := ward.AddStock(supplyID, qty); err != nil {
		// Shelf space ran out; undo the ledger debit and the quota draw.
		entry.TotalOnHand += qty
		entry.WithdrawnToday -= qty
		s.state.RefundQuota(qty)
		return fmt.Errorf("distribution to %s: %w", wardName, err)
	}

	s.journal.Record(ctx, journal.Event{
		Day:      s.state.Day,
		Type:     journal.EventDistribution,
		SupplyID: supplyID,
		Quantity: qty,
		Ward:     ward.Name,
		Detail:   fmt.Sprintf("%d of supply %d distributed to %s", qty, supplyID, ward.Name),
	})
	return nil
}

// QuotaRemaining reports how much of today's shared withdrawal pool is
// left.
func (s *Service) QuotaRemaining() int {
	return s.state.QuotaLeft
}

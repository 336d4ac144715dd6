// Package transfers moves waiting patients into clinical wards under the
// daily action budget.
package transfers

import (
	"context"
	"fmt"

	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/models"
)

// Service provides manual transfer operations.
type Service struct {
	state   *hospital.State
	journal *journal.Journal
}

// NewService creates a new transfer service.
func NewService(state *hospital.State, j *journal.Journal) *Service {
	return &Service{state: state, journal: j}
}

// PageSize returns the configured waiting room page size.
func (s *Service) PageSize() int {
	return s.state.Policy.PageSize
}

// ListWaitingPage returns one page of the waiting room. Pages are
// one-based. The underlying list is index-addressed, so a page is a slice
// view, not a copy of the whole queue.
func (s *Service) ListWaitingPage(ctx context.Context, page int) (*models.PatientList, error) {
	waiting := s.state.WaitingRoom().Patients()
	pg := models.Pagination{Page: page, PageSize: s.state.Policy.PageSize}

	total := len(waiting)
	totalPages := pg.TotalPages(total)
	if page < 1 || page > totalPages {
		return nil, fmt.Errorf("page %d of %d: %w", page, totalPages, hospital.ErrInvalidSelection)
	}

	lo := pg.Offset()
	hi := lo + pg.Limit()
	if hi > total {
		hi = total
	}
	if lo > total {
		lo = total
	}

	return &models.PatientList{
		Patients:   waiting[lo:hi],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Destinations returns the wards offered for a patient: the preferred
// area first when it exists and has a free bed, then the remaining
// clinical wards in registry order with free beds.
func (s *Service) Destinations(p *models.Patient) []*hospital.Ward {
	var out []*hospital.Ward

	preferred, err := s.state.Lookup(p.PreferredArea)
	if err == nil && preferred.Kind == hospital.KindClinical && preferred.FreeBeds() > 0 {
		out = append(out, preferred)
	}

	for _, w := range s.state.ClinicalWards() {
		if len(out) > 0 && w == out[0] {
			continue
		}
		if w.FreeBeds() > 0 {
			out = append(out, w)
		}
	}
	return out
}

// TransferOne moves the waiting patient at the given absolute index into
// the named ward. It burns one daily action, and only on success; a full
// ward or a bad selection leaves the waiting room untouched.
func (s *Service) TransferOne(ctx context.Context, waitingIndex int, wardName string) (*models.Patient, error) {
	if s.state.ActionsLeft <= 0 {
		return nil, fmt.Errorf("transfer: %w", hospital.ErrNoBudget)
	}

	waiting := s.state.WaitingRoom()
	if waitingIndex < 0 || waitingIndex >= waiting.PatientCount() {
		return nil, fmt.Errorf("patient %d: %w", waitingIndex, hospital.ErrInvalidSelection)
	}

	dest, err := s.state.Lookup(wardName)
	if err != nil {
		return nil, fmt.Errorf("transfer destination: %w", err)
	}
	if dest.Kind != hospital.KindClinical {
		return nil, fmt.Errorf("%s does not admit patients: %w", wardName, hospital.ErrInvalidSelection)
	}
	if dest.FreeBeds() <= 0 {
		return nil, fmt.Errorf("%s: %w", wardName, hospital.ErrWardFull)
	}

	p, err := waiting.RemovePatientAt(waitingIndex)
	if err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}
	if err := dest.AddPatient(p); err != nil {
		// Capacity was checked above; restore the queue on the off chance.
		waiting.AddPatient(p)
		return nil, fmt.Errorf("transfer: %w", err)
	}

	if err := s.state.SpendAction(); err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}

	s.journal.Record(ctx, journal.Event{
		Day:       s.state.Day,
		Type:      journal.EventTransfer,
		PatientID: p.ID,
		Ward:      dest.Name,
		Detail:    fmt.Sprintf("%s transferred to %s", p.FullName(), dest.Name),
	})
	return p, nil
}

// Package admissions feeds the intake backlog and moves arrivals into the
// waiting room.
package admissions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/models"
	"github.com/medboard/medboard/internal/roster"
	"github.com/medboard/medboard/internal/util"
)

// Service provides intake operations.
type Service struct {
	state   *hospital.State
	journal *journal.Journal
	gen     *roster.ArrivalGenerator
	caseGen *util.CaseNumberGenerator
}

// NewService creates a new admissions service. The generator may be nil
// when automatic arrivals are disabled.
func NewService(state *hospital.State, j *journal.Journal, gen *roster.ArrivalGenerator) *Service {
	return &Service{
		state:   state,
		journal: j,
		gen:     gen,
		caseGen: util.NewCaseNumberGenerator(),
	}
}

// GenerateArrivals rolls the day's walk-ins into the intake backlog.
// A no-op when automatic arrivals are disabled.
func (s *Service) GenerateArrivals(ctx context.Context) []*models.Patient {
	if s.gen == nil || !s.state.Policy.AutoArrivals {
		return nil
	}
	batch := s.gen.Generate()
	for _, p := range batch {
		s.state.EnqueueArrival(p)
	}
	slog.Debug("generated arrivals", "day", s.state.Day, "count", len(batch))
	return batch
}

// AdmitResult reports one admission pass.
type AdmitResult struct {
	Admitted []*models.Patient
	Backlog  int
}

// AdmitDaily drains up to max backlog patients into the waiting room in
// arrival order. It never errors: when the waiting room is full the rest
// simply stay queued.
func (s *Service) AdmitDaily(ctx context.Context, max int) AdmitResult {
	res := AdmitResult{}
	for i := 0; i < max; i++ {
		if s.state.WaitingRoom().FreeBeds() == 0 {
			break
		}
		p := s.state.DequeueArrival()
		if p == nil {
			break
		}
		if err := s.state.WaitingRoom().AddPatient(p); err != nil {
			// Should not happen after the FreeBeds check; keep the
			// patient queued rather than losing them.
			s.state.EnqueueArrival(p)
			break
		}
		res.Admitted = append(res.Admitted, p)

		caseNum := s.caseGen.Next(s.state.Day)
		s.journal.Record(ctx, journal.Event{
			Day:       s.state.Day,
			Type:      journal.EventAdmission,
			PatientID: p.ID,
			Ward:      s.state.WaitingRoom().Name,
			Detail:    fmt.Sprintf("%s admitted as %s (%s)", p.FullName(), caseNum, p.Severity),
		})
	}
	res.Backlog = s.state.IntakeBacklog()
	return res
}

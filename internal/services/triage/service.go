// Package triage runs the waiting-room turn pass and the end-of-day
// close-out.
package triage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/models"
)

// Service provides turn and day processing.
type Service struct {
	state   *hospital.State
	journal *journal.Journal
}

// NewService creates a new triage service.
func NewService(state *hospital.State, j *journal.Journal) *Service {
	return &Service{state: state, journal: j}
}

// Escalation records a critical patient moved out of the waiting room.
type Escalation struct {
	Patient *models.Patient
	Ward    string
}

// TurnReport summarizes one waiting-room pass.
type TurnReport struct {
	Processed int
	Escalated []Escalation
	Deaths    []*models.Patient
}

// DaySummary reports an end-of-day close-out.
type DaySummary struct {
	ClosedDay   int
	Turn        TurnReport
	Replenished int
	Stats       models.Statistics
}

// AdvanceTurn processes every patient currently in the waiting room once,
// in FIFO order. Each patient ages by one turn; critical patients are
// escalated to the first escalation ward with a free bed; patients past
// their survival window die. Survivors rotate to the back, so relative
// order is preserved. Empty waiting room is a no-op.
func (s *Service) AdvanceTurn(ctx context.Context) TurnReport {
	waiting := s.state.WaitingRoom()
	report := TurnReport{Processed: waiting.PatientCount()}

	// Snapshot the count: patients escalating into a ward or dying this
	// pass must not be processed twice, and survivors re-enter at the back.
	for i := 0; i < report.Processed; i++ {
		p := waiting.PopFrontPatient()
		if p == nil {
			break
		}
		p.TurnsWaited++

		if p.Severity == models.SeverityCritical {
			if ward := s.escalate(ctx, p); ward != "" {
				report.Escalated = append(report.Escalated, Escalation{Patient: p, Ward: ward})
				continue
			}
		}

		if s.pastSurvivalWindow(p) {
			s.state.Deceased++
			s.state.Reputation -= 2
			report.Deaths = append(report.Deaths, p)
			s.journal.Record(ctx, journal.Event{
				Day:       s.state.Day,
				Type:      journal.EventDeath,
				PatientID: p.ID,
				Ward:      waiting.Name,
				Detail:    fmt.Sprintf("%s died after %d turns waiting (%s)", p.FullName(), p.TurnsWaited, p.Severity),
			})
			continue
		}

		if err := waiting.AddPatient(p); err != nil {
			// Cannot happen: a slot was freed by the pop above.
			slog.Error("returning patient to waiting room failed", "patient", p.ID, "error", err)
		}
	}

	return report
}

// escalate tries the configured escalation wards in order and returns the
// name of the ward that took the patient, or empty.
func (s *Service) escalate(ctx context.Context, p *models.Patient) string {
	for _, name := range s.state.Policy.EscalationWards {
		w, err := s.state.Lookup(name)
		if err != nil {
			slog.Warn("escalation ward missing from topology", "ward", name)
			continue
		}
		if w.FreeBeds() <= 0 {
			continue
		}
		if err := w.AddPatient(p); err != nil {
			continue
		}
		s.journal.Record(ctx, journal.Event{
			Day:       s.state.Day,
			Type:      journal.EventEscalation,
			PatientID: p.ID,
			Ward:      w.Name,
			Detail:    fmt.Sprintf("%s escalated to %s", p.FullName(), w.Name),
		})
		return w.Name
	}
	return ""
}

// pastSurvivalWindow applies the mortality rule: critical patients
// survive two full turns waiting, moderate patients three. Mild patients
// wait indefinitely.
func (s *Service) pastSurvivalWindow(p *models.Patient) bool {
	switch p.Severity {
	case models.SeverityCritical:
		return p.TurnsWaited > 2
	case models.SeverityModerate:
		return p.TurnsWaited > 3
	default:
		return false
	}
}

// RunEndOfDay runs one final turn pass, resets per-supply withdrawal
// counters, replenishes the warehouse ledger, advances the day and
// recomputes the daily budgets.
func (s *Service) RunEndOfDay(ctx context.Context) DaySummary {
	summary := DaySummary{
		ClosedDay: s.state.Day,
		Turn:      s.AdvanceTurn(ctx),
	}

	policy := s.state.Policy
	for _, e := range s.state.Warehouse().LedgerEntries() {
		if e.TotalOnHand < policy.ReplenishCap {
			e.TotalOnHand += policy.ReplenishAmount
			if e.TotalOnHand > policy.ReplenishCap {
				e.TotalOnHand = policy.ReplenishCap
			}
			summary.Replenished++
		}
	}

	s.state.Day++
	s.state.ResetDailyBudgets()

	summary.Stats = s.state.Statistics()
	s.journal.Record(ctx, journal.Event{
		Day:  summary.ClosedDay,
		Type: journal.EventDayEnd,
		Detail: fmt.Sprintf("day %d closed: %d deaths, %d escalations, %d supplies replenished",
			summary.ClosedDay, len(summary.Turn.Deaths), len(summary.Turn.Escalated), summary.Replenished),
	})
	slog.Info("day closed",
		"day", summary.ClosedDay,
		"deaths", len(summary.Turn.Deaths),
		"escalations", len(summary.Turn.Escalated),
		"reputation", s.state.Reputation,
	)

	return summary
}

package hospital

import (
	"errors"
	"fmt"

	"github.com/medboard/medboard/internal/models"
)

// WardSpec describes one ward of the topology.
type WardSpec struct {
	Name            string
	Kind            WardKind
	PatientCapacity int
	SupplyCapacity  int
}

// TreatmentSource selects where Treat debits the required supply from.
type TreatmentSource string

const (
	SourceWard      TreatmentSource = "ward"
	SourceWarehouse TreatmentSource = "warehouse"
)

func (s TreatmentSource) Valid() bool {
	return s == SourceWard || s == SourceWarehouse
}

// Policy carries the tunable simulation constants. Zero values are not
// useful; build one from DefaultPolicy or from config.
type Policy struct {
	DailyAdmissions    int
	ActionBase         int
	QuotaBase          int
	QuotaPerReputation int
	ReplenishAmount    int
	ReplenishCap       int
	PageSize           int
	TreatmentSource    TreatmentSource
	AutoArrivals       bool

	// EscalationWards are tried in order when a critical patient in the
	// waiting room needs a bed.
	EscalationWards []string
}

// DefaultPolicy mirrors the stock configuration.
func DefaultPolicy() Policy {
	return Policy{
		DailyAdmissions:    5,
		ActionBase:         5,
		QuotaBase:          50,
		QuotaPerReputation: 5,
		ReplenishAmount:    10,
		ReplenishCap:       200,
		PageSize:           10,
		TreatmentSource:    SourceWard,
		AutoArrivals:       true,
		EscalationWards:    []string{"Emergency", "ICU"},
	}
}

// State is the whole hospital: ward registry, intake backlog, supply
// catalog and the day counters. It is owned by a single goroutine; nothing
// here locks.
type State struct {
	Policy Policy

	wards  []*Ward
	byName map[string]*Ward

	waiting   *Ward
	warehouse *Ward

	intake  []*models.Patient
	catalog map[int]*models.Supply

	Day        int
	Cured      int
	Deceased   int
	Reputation int

	// ActionsLeft is the shared daily pool for transfers and treatments.
	ActionsLeft int

	// QuotaLeft is the shared warehouse withdrawal pool, fixed at day
	// open; a mid-day reputation change does not widen it.
	QuotaLeft int

	nextPatientID int
}

// NewState builds a hospital from a topology. Ward names must be unique;
// exactly one waiting room and one warehouse are required.
func NewState(specs []WardSpec, policy Policy) (*State, error) {
	s := &State{
		Policy:        policy,
		byName:        make(map[string]*Ward, len(specs)),
		catalog:       make(map[int]*models.Supply),
		Day:           1,
		nextPatientID: 1,
	}
	for _, sp := range specs {
		if sp.Name == "" {
			return nil, fmt.Errorf("ward with empty name: %w", ErrInvalidSelection)
		}
		if !sp.Kind.Valid() {
			return nil, fmt.Errorf("ward %q: invalid kind %q", sp.Name, sp.Kind)
		}
		if _, dup := s.byName[sp.Name]; dup {
			return nil, fmt.Errorf("duplicate ward name %q", sp.Name)
		}
		w := NewWard(sp.Name, sp.Kind, sp.PatientCapacity, sp.SupplyCapacity)
		s.wards = append(s.wards, w)
		s.byName[sp.Name] = w
		switch sp.Kind {
		case KindWaiting:
			if s.waiting != nil {
				return nil, errors.New("topology has more than one waiting room")
			}
			s.waiting = w
		case KindWarehouse:
			if s.warehouse != nil {
				return nil, errors.New("topology has more than one warehouse")
			}
			s.warehouse = w
		}
	}
	if s.waiting == nil {
		return nil, errors.New("topology has no waiting room")
	}
	if s.warehouse == nil {
		return nil, errors.New("topology has no warehouse")
	}
	s.ActionsLeft = s.DailyActions()
	s.QuotaLeft = s.DailyQuota()
	return s, nil
}

// DefaultTopology is the stock eight-ward layout.
func DefaultTopology() []WardSpec {
	return []WardSpec{
		{Name: "Waiting Room", Kind: KindWaiting, PatientCapacity: 999, SupplyCapacity: 0},
		{Name: "ICU", Kind: KindClinical, PatientCapacity: 10, SupplyCapacity: 100},
		{Name: "Emergency", Kind: KindClinical, PatientCapacity: 20, SupplyCapacity: 150},
		{Name: "Gynecology", Kind: KindClinical, PatientCapacity: 8, SupplyCapacity: 80},
		{Name: "Traumatology", Kind: KindClinical, PatientCapacity: 12, SupplyCapacity: 120},
		{Name: "Internal Medicine", Kind: KindClinical, PatientCapacity: 15, SupplyCapacity: 100},
		{Name: "Pediatrics", Kind: KindClinical, PatientCapacity: 10, SupplyCapacity: 90},
		{Name: "Central Warehouse", Kind: KindWarehouse, PatientCapacity: 0, SupplyCapacity: 200},
	}
}

// Lookup finds a ward by name.
func (s *State) Lookup(name string) (*Ward, error) {
	w, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrWardNotFound)
	}
	return w, nil
}

// Wards returns all wards in registry order.
func (s *State) Wards() []*Ward { return s.wards }

// ClinicalWards returns the treatable wards in registry order.
func (s *State) ClinicalWards() []*Ward {
	out := make([]*Ward, 0, len(s.wards))
	for _, w := range s.wards {
		if w.Kind == KindClinical {
			out = append(out, w)
		}
	}
	return out
}

func (s *State) WaitingRoom() *Ward { return s.waiting }
func (s *State) Warehouse() *Ward   { return s.warehouse }

// EnqueueArrival appends a patient to the intake backlog, assigning the
// next sequential id when the patient has none.
func (s *State) EnqueueArrival(p *models.Patient) {
	if p.ID == 0 {
		p.ID = s.NextPatientID()
	} else if p.ID >= s.nextPatientID {
		s.nextPatientID = p.ID + 1
	}
	s.intake = append(s.intake, p)
}

// SeedWaitingRoom places a roster patient directly in the waiting room,
// keeping the sequential id counter ahead of roster ids. Patients that do
// not fit go to the intake backlog instead.
func (s *State) SeedWaitingRoom(p *models.Patient) {
	if p.ID >= s.nextPatientID {
		s.nextPatientID = p.ID + 1
	}
	if err := s.waiting.AddPatient(p); err != nil {
		s.intake = append(s.intake, p)
	}
}

// DequeueArrival pops the oldest backlog patient, nil when empty.
func (s *State) DequeueArrival() *models.Patient {
	if len(s.intake) == 0 {
		return nil
	}
	p := s.intake[0]
	s.intake = s.intake[1:]
	return p
}

func (s *State) IntakeBacklog() int { return len(s.intake) }

// NextPatientID hands out sequential patient ids, continuing past the
// highest id seen so far.
func (s *State) NextPatientID() int {
	id := s.nextPatientID
	s.nextPatientID++
	return id
}

// RegisterSupply records supply metadata in the catalog. Re-registering an
// id overwrites the metadata.
func (s *State) RegisterSupply(sup *models.Supply) {
	s.catalog[sup.ID] = sup
}

// SupplyByID looks up catalog metadata for a supply.
func (s *State) SupplyByID(id int) (*models.Supply, error) {
	sup, ok := s.catalog[id]
	if !ok {
		return nil, fmt.Errorf("supply %d: %w", id, ErrSupplyNotFound)
	}
	return sup, nil
}

// DailyQuota computes the warehouse withdrawal pool size from the current
// reputation, floored at zero. The live pool is QuotaLeft, captured from
// this at day open.
func (s *State) DailyQuota() int {
	q := s.Policy.QuotaBase + s.Reputation*s.Policy.QuotaPerReputation
	if q < 0 {
		return 0
	}
	return q
}

// DailyActions is the shared transfer/treatment pool size, never below 1.
func (s *State) DailyActions() int {
	n := s.Policy.ActionBase + s.Reputation
	if n < 1 {
		return 1
	}
	return n
}

// SpendAction burns one action from the daily pool.
func (s *State) SpendAction() error {
	if s.ActionsLeft <= 0 {
		return ErrNoBudget
	}
	s.ActionsLeft--
	return nil
}

// ResetDailyBudgets recomputes the action and withdrawal pools and clears
// per-supply withdrawal counters. Called by the end-of-day processor.
func (s *State) ResetDailyBudgets() {
	s.ActionsLeft = s.DailyActions()
	s.QuotaLeft = s.DailyQuota()
	for _, e := range s.warehouse.LedgerEntries() {
		e.WithdrawnToday = 0
	}
}

// SpendQuota draws qty from the day's shared withdrawal pool.
func (s *State) SpendQuota(qty int) error {
	if qty > s.QuotaLeft {
		return ErrQuotaExceeded
	}
	s.QuotaLeft -= qty
	return nil
}

// RefundQuota returns qty to the pool after a rolled-back withdrawal.
func (s *State) RefundQuota(qty int) {
	s.QuotaLeft += qty
}

// CriticalCount counts severity-3 patients across all wards.
func (s *State) CriticalCount() int {
	n := 0
	for _, w := range s.wards {
		for _, p := range w.Patients() {
			if p.Severity == models.SeverityCritical {
				n++
			}
		}
	}
	return n
}

// InDangerCount counts waiting critical patients one turn from a
// mortality check.
func (s *State) InDangerCount() int {
	n := 0
	for _, p := range s.waiting.Patients() {
		if p.Severity == models.SeverityCritical && p.TurnsWaited >= 2 {
			n++
		}
	}
	return n
}

// Statistics snapshots the dashboard counters.
func (s *State) Statistics() models.Statistics {
	return models.Statistics{
		Day:           s.Day,
		Cured:         s.Cured,
		Deceased:      s.Deceased,
		Reputation:    s.Reputation,
		Waiting:       s.waiting.PatientCount(),
		Critical:      s.CriticalCount(),
		InDanger:      s.InDangerCount(),
		ActionsLeft:   s.ActionsLeft,
		QuotaLeft:     s.QuotaLeft,
		IntakeBacklog: len(s.intake),
	}
}

package tui

import (
	"testing"

	"github.com/medboard/medboard/internal/config"
	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/models"
	"github.com/medboard/medboard/internal/services/admissions"
	"github.com/medboard/medboard/internal/services/transfers"
	"github.com/medboard/medboard/internal/services/treatment"
	"github.com/medboard/medboard/internal/services/triage"
	"github.com/medboard/medboard/internal/services/warehouse"
)

// newTestServices wires a full service set over a fresh default topology
// and an in-memory journal. Admissions gets no arrival generator so tests
// stay deterministic.
func newTestServices(t *testing.T) (*config.Config, Services) {
	t.Helper()

	cfg := config.Default()

	state, err := hospital.NewState(cfg.Topology(), cfg.EnginePolicy())
	if err != nil {
		t.Fatalf("building state: %v", err)
	}

	j, err := journal.NewInMemory()
	if err != nil {
		t.Fatalf("opening journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })

	svc := Services{
		State:      state,
		Admissions: admissions.NewService(state, j, nil),
		Triage:     triage.NewService(state, j),
		Transfers:  transfers.NewService(state, j),
		Treatment:  treatment.NewService(state, j),
		Warehouse:  warehouse.NewService(state, j),
		Journal:    j,
	}
	return cfg, svc
}

// newTestApp creates an App with terminal dimensions already set, for unit
// tests that drive Update directly.
func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg, svc := newTestServices(t)
	app := NewApp(cfg, svc)
	app.width = 120
	app.height = 40
	app.ready = true
	return app
}

// seedCritical puts one critical patient in the waiting room and returns it.
func seedCritical(app *App) *models.Patient {
	p := &models.Patient{
		Name:             "Luis",
		Surname:          "Moreno",
		Age:              61,
		PreferredArea:    "Emergency",
		Diagnosis:        "Cardiac arrest",
		Severity:         models.SeverityCritical,
		RequiredSupplyID: 1005,
		RequiredQuantity: 3,
	}
	app.svc.State.SeedWaitingRoom(p)
	return p
}

func seedWaiting(t *testing.T, app *App, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		app.svc.State.SeedWaitingRoom(&models.Patient{
			Name:             "Ana",
			Surname:          "Reyes",
			Age:              35,
			PreferredArea:    "ICU",
			Diagnosis:        "Sepsis",
			Severity:         models.SeverityModerate,
			RequiredSupplyID: 1001,
			RequiredQuantity: 2,
		})
	}
}

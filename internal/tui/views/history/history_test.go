package history

import (
	"context"
	"strings"
	"testing"

	"github.com/medboard/medboard/internal/journal"
)

func newTestJournal(t *testing.T) *journal.Journal {
	t.Helper()
	j, err := journal.NewInMemory()
	if err != nil {
		t.Fatalf("opening journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestLoadDayFilter(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	j.Record(ctx, journal.Event{Day: 1, Type: journal.EventCure, Ward: "ICU", Detail: "patient 7 cured"})
	j.Record(ctx, journal.Event{Day: 2, Type: journal.EventDeath, Ward: "Emergency", Detail: "patient 9 died"})
	j.Record(ctx, journal.Event{Day: 2, Type: journal.EventTransfer, Ward: "Pediatrics", Detail: "patient 11 admitted"})

	v := NewLogView(j)
	if err := v.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := v.table.Len(); got != 3 {
		t.Fatalf("unfiltered rows = %d, want 3", got)
	}

	v.ToggleDayFilter(2)
	if err := v.Load(ctx); err != nil {
		t.Fatalf("Load filtered: %v", err)
	}
	if got := v.table.Len(); got != 2 {
		t.Errorf("day 2 rows = %d, want 2", got)
	}
	out := v.Render(120, 40)
	if !strings.Contains(out, "Showing day 2 only") {
		t.Errorf("render does not announce the filter:\n%s", out)
	}
	if strings.Contains(out, "patient 7 cured") {
		t.Errorf("day 1 event leaked through the filter:\n%s", out)
	}

	// Toggling the same day again widens back out.
	v.ToggleDayFilter(2)
	if v.FilterDay() != 0 {
		t.Errorf("FilterDay after second toggle = %d, want 0", v.FilterDay())
	}
	if err := v.Load(ctx); err != nil {
		t.Fatalf("Load widened: %v", err)
	}
	if got := v.table.Len(); got != 3 {
		t.Errorf("widened rows = %d, want 3", got)
	}
}

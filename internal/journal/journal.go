// Package journal records the session's clinical events in SQLite. The
// journal is an audit trail for the history view; simulation state is
// never reloaded from it.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// EventType classifies a journal entry.
type EventType string

const (
	EventAdmission    EventType = "ADMISSION"
	EventTransfer     EventType = "TRANSFER"
	EventEscalation   EventType = "ESCALATION"
	EventDeath        EventType = "DEATH"
	EventCure         EventType = "CURE"
	EventProcurement  EventType = "PROCUREMENT"
	EventDistribution EventType = "DISTRIBUTION"
	EventDayEnd       EventType = "DAY_END"
)

// Event is one journal entry. PatientID, Ward, SupplyID and Quantity are
// filled per type; unused fields stay zero.
type Event struct {
	ID         string
	Day        int
	Type       EventType
	PatientID  int
	Ward       string
	SupplyID   int
	Quantity   int
	Detail     string
	RecordedAt time.Time
}

// Journal wraps a sql.DB holding the event table. A nil *Journal is a
// valid no-op recorder, so callers never branch on whether journaling is
// enabled.
type Journal struct {
	db   *sql.DB
	path string
	ids  idSource
}

type idSource interface {
	NewID() string
}

// Open creates the journal database. An empty path keeps it in memory.
// The schema is migrated on open.
func Open(path string, ids idSource) (*Journal, error) {
	dsn := ":memory:"
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("creating journal directory: %w", err)
			}
		}
		dsn = fmt.Sprintf("file:%s?_txlock=immediate&_timeout=5000", path)
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	// SQLite only supports one writer; keep the single connection alive so
	// an in-memory journal survives the whole session.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	j := &Journal{db: sqlDB, path: path, ids: ids}

	if err := j.initPragmas(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("initializing pragmas: %w", err)
	}

	m, err := NewMigrator(j)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("preparing migrations: %w", err)
	}
	if _, err := m.MigrateUp(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrating journal schema: %w", err)
	}

	return j, nil
}

func (j *Journal) initPragmas() error {
	pragmas := []struct {
		name   string
		pragma string
	}{
		{"journal_mode", "PRAGMA journal_mode=WAL"},
		{"synchronous", "PRAGMA synchronous=NORMAL"},
		{"busy_timeout", "PRAGMA busy_timeout=5000"},
		{"foreign_keys", "PRAGMA foreign_keys=ON"},
	}
	for _, p := range pragmas {
		if _, err := j.db.Exec(p.pragma); err != nil {
			return fmt.Errorf("setting %s: %w", p.name, err)
		}
	}
	return nil
}

// Close releases the database. Nil-safe.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends an event. Nil-safe, and never fails the caller's
// operation: insert errors are logged and dropped since the journal is
// advisory.
func (j *Journal) Record(ctx context.Context, ev Event) {
	if j == nil {
		return
	}
	if ev.ID == "" {
		ev.ID = j.ids.NewID()
	}
	if ev.RecordedAt.IsZero() {
		ev.RecordedAt = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO events (id, day, type, patient_id, ward, supply_id, quantity, detail, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Day, string(ev.Type), ev.PatientID, ev.Ward,
		ev.SupplyID, ev.Quantity, ev.Detail, ev.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		slog.Warn("journal insert failed", "type", ev.Type, "error", err)
	}
}

// Recent returns the newest events, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Event, error) {
	if j == nil {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, day, type, patient_id, ward, supply_id, quantity, detail, recorded_at
		FROM events ORDER BY recorded_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// EventsForDay returns the events of one simulation day in recording order.
func (j *Journal) EventsForDay(ctx context.Context, day int) ([]Event, error) {
	if j == nil {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, day, type, patient_id, ward, supply_id, quantity, detail, recorded_at
		FROM events WHERE day = ? ORDER BY recorded_at, id`, day)
	if err != nil {
		return nil, fmt.Errorf("querying events for day %d: %w", day, err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// CountByType tallies all recorded events per type.
func (j *Journal) CountByType(ctx context.Context) (map[EventType]int, error) {
	if j == nil {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx,
		"SELECT type, COUNT(*) FROM events GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("counting events: %w", err)
	}
	defer rows.Close()

	counts := make(map[EventType]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scanning count row: %w", err)
		}
		counts[EventType(t)] = n
	}
	return counts, rows.Err()
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		var ev Event
		var t, recorded string
		if err := rows.Scan(&ev.ID, &ev.Day, &t, &ev.PatientID, &ev.Ward,
			&ev.SupplyID, &ev.Quantity, &ev.Detail, &recorded); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		ev.Type = EventType(t)
		if ts, err := time.Parse(time.RFC3339, recorded); err == nil {
			ev.RecordedAt = ts
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// WithTransaction executes a function within a transaction.
// The transaction is committed if the function returns nil, otherwise rolled back.
func (j *Journal) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

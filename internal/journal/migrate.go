package journal

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration represents one schema migration.
type Migration struct {
	Version     int
	Description string
	UpSQL       string
}

// Migrator applies the embedded journal schema migrations in order.
type Migrator struct {
	j          *Journal
	migrations []Migration
}

// NewMigrator loads the embedded migrations and ensures the tracking table.
func NewMigrator(j *Journal) (*Migrator, error) {
	m := &Migrator{j: j}

	if err := m.loadMigrations(); err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}

	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}

	return m, nil
}

// loadMigrations reads migration files named NNN_description.sql.
func (m *Migrator) loadMigrations() error {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	pattern := regexp.MustCompile(`^(\d{3})_(.+)\.sql$`)

	for _, entry := range entries {
		matches := pattern.FindStringSubmatch(entry.Name())
		if matches == nil {
			slog.Warn("skipping invalid migration filename", "name", entry.Name())
			continue
		}

		version, _ := strconv.Atoi(matches[1])
		description := strings.ReplaceAll(matches[2], "_", " ")

		content, err := fs.ReadFile(migrationsFS, filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		m.migrations = append(m.migrations, Migration{
			Version:     version,
			Description: description,
			UpSQL:       parseUpSQL(string(content)),
		})
	}

	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})

	return nil
}

// parseUpSQL extracts the UP section. The journal never rolls back, so any
// "-- +migrate Down" section is ignored.
func parseUpSQL(content string) string {
	upMarker := "-- +migrate Up"
	downMarker := "-- +migrate Down"

	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return strings.TrimSpace(content)
	}

	rest := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(rest, downMarker); downIdx != -1 {
		rest = rest[:downIdx]
	}
	return strings.TrimSpace(rest)
}

// CurrentVersion returns the applied schema version.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.j.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations",
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("querying current version: %w", err)
	}
	return version, nil
}

// MigrateUp applies all pending migrations and returns the resulting
// schema version.
func (m *Migrator) MigrateUp(ctx context.Context) (int, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}

	for _, mig := range m.migrations {
		if mig.Version <= current {
			continue
		}
		slog.Debug("applying journal migration",
			"version", mig.Version,
			"description", mig.Description,
		)
		if err := m.apply(ctx, mig); err != nil {
			return current, fmt.Errorf("migration %d failed: %w", mig.Version, err)
		}
		current = mig.Version
	}

	return current, nil
}

// apply runs one migration in a transaction, splitting on statement
// boundaries so multi-statement files work.
func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	return m.j.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range strings.Split(mig.UpSQL, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("executing statement: %w\nSQL: %s", err, stmt)
			}
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, description) VALUES (?, ?)",
			mig.Version, mig.Description,
		)
		if err != nil {
			return fmt.Errorf("recording migration: %w", err)
		}

		return nil
	})
}

package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Supported dialects. Each has its own directory of embedded migrations.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var MigrationFiles embed.FS

// RunMigrations executes all pending migrations for dialect against db.
// If autoMigrate is false, it only logs the current version and returns.
func RunMigrations(db *sql.DB, dialect string, autoMigrate bool) error {
	m, err := newMigrate(db, dialect)
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if dirty {
		slog.Warn("[Migrations] Database is in dirty state - migration was interrupted",
			"dialect", dialect,
			"version", version,
			"action", "attempting automatic recovery",
		)

		// Every migration is idempotent (IF NOT EXISTS), so re-running from
		// the previous version is safe.
		prev := int(version) - 1
		if prev < 1 {
			prev = database.NilVersion
		}
		if err := m.Force(prev); err != nil {
			return fmt.Errorf("failed to recover dirty migration state at version %d: %w", version, err)
		}
		slog.Info("[Migrations] Recovered dirty migration state", "forced_version", prev)
	}

	if !autoMigrate {
		slog.Info("[Migrations] Auto-migration disabled, skipping migrations",
			"dialect", dialect,
			"current_version", version,
			"dirty", dirty,
		)
		return nil
	}

	slog.Info("[Migrations] Running database migrations", "dialect", dialect, "current_version", version)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("[Migrations] Database schema is up to date", "version", version)
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get updated migration version: %w", err)
	}

	slog.Info("[Migrations] Database migrations completed successfully",
		"from_version", version,
		"to_version", newVersion,
	)
	return nil
}

// Version reports the applied schema version without changing anything.
func Version(db *sql.DB, dialect string) (uint, bool, error) {
	m, err := newMigrate(db, dialect)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

func newMigrate(db *sql.DB, dialect string) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(MigrationFiles, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source for %q: %w", dialect, err)
	}

	var dbDriver database.Driver
	switch dialect {
	case DialectPostgres:
		dbDriver, err = postgres.WithInstance(db, &postgres.Config{})
	case DialectSQLite:
		dbDriver, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, dialect, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

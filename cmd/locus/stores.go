package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	corecfg "github.com/aevon-lab/project-locus/internal/core/config"
	"github.com/aevon-lab/project-locus/internal/core/storage"
	"github.com/aevon-lab/project-locus/internal/core/storage/postgres"
	"github.com/aevon-lab/project-locus/internal/core/storage/sqlite"
	"github.com/aevon-lab/project-locus/internal/migrations"
)

type configLoader func() (*corecfg.Config, error)

// stores is the storage layer selected by database.type.
type stores struct {
	db       *sql.DB
	measures storage.MeasureStore
	stats    storage.StatStore
	close    func() error
}

func openDB(cfg corecfg.DatabaseConfig) (*sql.DB, string, error) {
	switch cfg.Type {
	case "sqlite":
		db, err := sqlite.Open(cfg.DSN)
		return db, migrations.DialectSQLite, err
	case "postgres":
		db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnLifetime())
		return db, migrations.DialectPostgres, err
	default:
		return nil, "", fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

// openStores connects, migrates and builds both stores.
func openStores(cfg corecfg.DatabaseConfig) (*stores, error) {
	db, dialect, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(db, dialect, cfg.AutoMigrate); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	switch dialect {
	case migrations.DialectSQLite:
		adapter := sqlite.NewAdapter(db)
		slog.Info("[Storage] Using SQLite backend")
		return &stores{
			db:       db,
			measures: adapter,
			stats:    sqlite.NewStatAdapter(db),
			close:    adapter.Close,
		}, nil
	default:
		adapter, err := postgres.NewAdapter(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init postgres adapter: %w", err)
		}
		slog.Info("[Storage] Using PostgreSQL backend")
		return &stores{
			db:       db,
			measures: adapter,
			stats:    postgres.NewStatAdapter(db),
			close:    adapter.Close,
		}, nil
	}
}

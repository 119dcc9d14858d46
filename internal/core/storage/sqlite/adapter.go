// Package sqlite is the embedded single-file backend. It implements the same
// storage contracts as the postgres package on top of modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/project-locus/internal/api/v1"
	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/core/storage"
	_ "modernc.org/sqlite" // Register sqlite driver
)

// Open opens a database file. SQLite allows a single writer, so the pool is
// capped at one connection; callers must not query the *sql.DB from inside
// a WithTx callback.
//
// Example DSN: "file:locus.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	slog.Info("[SQLite] Database opened", "dsn", dsn)
	return db, nil
}

// Adapter implements storage.MeasureStore for SQLite.
type Adapter struct {
	db *sql.DB
}

// NewAdapter wraps a migrated database.
func NewAdapter(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

// WithTx runs fn against a transaction-bound writer and commits on success.
func (a *Adapter) WithTx(ctx context.Context, fn func(w storage.MeasureWriter) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("measure tx: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(&txWriter{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("measure tx: commit: %w", err)
	}
	return nil
}

type txWriter struct {
	tx *sql.Tx
}

func (w *txWriter) InsertMeasure(ctx context.Context, m v1.Measure) (int64, error) {
	day := stat.FormatDay(m.Created)

	if m.ID != 0 {
		_, err := w.tx.ExecContext(ctx, queryInsertMeasureWithID,
			m.ID, day, nullTime(m.Time),
			m.Lat, m.Lon, m.Accuracy, m.Altitude, m.AltitudeAccuracy, m.Radio,
		)
		if err != nil {
			return 0, mapInsertError(fmt.Sprintf("insert measure %d", m.ID), err)
		}
		return m.ID, nil
	}

	res, err := w.tx.ExecContext(ctx, queryInsertMeasure,
		day, nullTime(m.Time),
		m.Lat, m.Lon, m.Accuracy, m.Altitude, m.AltitudeAccuracy, m.Radio,
	)
	if err != nil {
		return 0, mapInsertError("insert measure", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert measure: last insert id: %w", err)
	}
	return id, nil
}

func (w *txWriter) InsertCellMeasure(ctx context.Context, measureID int64, c v1.CellMeasure) error {
	_, err := w.tx.ExecContext(ctx, queryInsertCellMeasure,
		measureID, stat.FormatDay(c.Created), nullTime(c.Time),
		c.Lat, c.Lon, c.Accuracy, c.Altitude, c.AltitudeAccuracy,
		c.Radio, c.MCC, c.MNC, c.LAC, c.CID, c.PSC, c.ASU, c.Signal, c.TA,
	)
	if err != nil {
		return mapInsertError("insert cell measure", err)
	}
	return nil
}

func (w *txWriter) InsertWifiMeasure(ctx context.Context, measureID int64, wf v1.WifiMeasure) error {
	_, err := w.tx.ExecContext(ctx, queryInsertWifiMeasure,
		measureID, stat.FormatDay(wf.Created), nullTime(wf.Time),
		wf.Lat, wf.Lon, wf.Accuracy, wf.Altitude, wf.AltitudeAccuracy,
		wf.Key, wf.Channel, wf.Signal,
	)
	if err != nil {
		return mapInsertError("insert wifi measure", err)
	}
	return nil
}

// CountByDay returns per-day row counts for from <= created < to.
func (a *Adapter) CountByDay(ctx context.Context, source stat.Source, from, to time.Time) (map[time.Time]int64, error) {
	query, ok := countByDayQueries[source]
	if !ok {
		return nil, fmt.Errorf("count by day: unknown source %q", source)
	}

	rows, err := a.db.QueryContext(ctx, query, stat.FormatDay(from), stat.FormatDay(to))
	if err != nil {
		return nil, fmt.Errorf("count %s by day: %w", source, err)
	}
	defer rows.Close()

	counts := make(map[time.Time]int64)
	for rows.Next() {
		var (
			day   string
			count int64
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("count %s by day: scan row: %w", source, err)
		}
		d, err := stat.ParseDay(day)
		if err != nil {
			return nil, fmt.Errorf("count %s by day: %w", source, err)
		}
		counts[d] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count %s by day: iterate rows: %w", source, err)
	}
	return counts, nil
}

// CountDistinctBefore counts distinct towers or access points first seen before the given day.
func (a *Adapter) CountDistinctBefore(ctx context.Context, source stat.Source, before time.Time) (int64, error) {
	query, ok := countDistinctQueries[source]
	if !ok {
		return 0, fmt.Errorf("count distinct %s: %w", source, storage.ErrUnsupportedSource)
	}

	var n int64
	if err := a.db.QueryRowContext(ctx, query, stat.FormatDay(before)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count distinct %s: %w", source, err)
	}
	return n, nil
}

// CountMeasures returns the total number of rows in source.
func (a *Adapter) CountMeasures(ctx context.Context, source stat.Source) (int64, error) {
	query, ok := countQueries[source]
	if !ok {
		return 0, fmt.Errorf("count measures: unknown source %q", source)
	}

	var n int64
	if err := a.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", source, err)
	}
	return n, nil
}

// DB returns the shared connection.
func (a *Adapter) DB() *sql.DB {
	return a.db
}

// Close closes the database.
func (a *Adapter) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	slog.Info("[SQLite] Adapter closed gracefully")
	return nil
}

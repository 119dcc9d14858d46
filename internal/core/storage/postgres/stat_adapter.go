package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/project-locus/internal/core/stat"
)

// StatAdapter implements storage.StatStore using PostgreSQL.
// The (key, time) unique constraint is what makes inserts idempotent.
type StatAdapter struct {
	db *sql.DB
}

// NewStatAdapter creates a StatAdapter sharing the given connection.
func NewStatAdapter(db *sql.DB) *StatAdapter {
	return &StatAdapter{db: db}
}

// ExistingStats returns the rows already persisted for kind on any of days.
func (a *StatAdapter) ExistingStats(ctx context.Context, kind stat.Kind, days []time.Time) ([]stat.Stat, error) {
	if len(days) == 0 {
		return nil, nil
	}

	rows, err := a.db.QueryContext(ctx, querySelectStatsForDays, int(kind), dayParams(days))
	if err != nil {
		return nil, fmt.Errorf("existing stats %s: %w", kind, err)
	}
	defer rows.Close()

	return collectStats(rows, kind)
}

// InsertIfAbsent writes s unless its (kind, day) row exists.
func (a *StatAdapter) InsertIfAbsent(ctx context.Context, s stat.Stat) (bool, error) {
	var id int64
	err := a.db.QueryRowContext(ctx, queryInsertStat, int(s.Kind), stat.FormatDay(s.Day), s.Value).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Debug("[StatAdapter] Stat already present",
			"kind", s.Kind.String(),
			"day", stat.FormatDay(s.Day))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert stat %s %s: %w", s.Kind, stat.FormatDay(s.Day), err)
	}
	return true, nil
}

// QueryRange returns rows for kind with from <= day < to.
func (a *StatAdapter) QueryRange(ctx context.Context, kind stat.Kind, from, to time.Time) ([]stat.Stat, error) {
	rows, err := a.db.QueryContext(ctx, querySelectStatRange, int(kind), stat.FormatDay(from), stat.FormatDay(to))
	if err != nil {
		return nil, fmt.Errorf("query stat range %s: %w", kind, err)
	}
	defer rows.Close()

	return collectStats(rows, kind)
}

// Latest returns the most recent row for kind.
func (a *StatAdapter) Latest(ctx context.Context, kind stat.Kind) (stat.Stat, bool, error) {
	s, err := scanStatRow(a.db.QueryRowContext(ctx, querySelectLatestStat, int(kind)), kind)
	if errors.Is(err, sql.ErrNoRows) {
		return stat.Stat{}, false, nil
	}
	if err != nil {
		return stat.Stat{}, false, fmt.Errorf("latest stat %s: %w", kind, err)
	}
	return s, true, nil
}

// Total sums every row of kind.
func (a *StatAdapter) Total(ctx context.Context, kind stat.Kind) (int64, error) {
	var total int64
	if err := a.db.QueryRowContext(ctx, querySumStat, int(kind)).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum stat %s: %w", kind, err)
	}
	return total, nil
}

func collectStats(rows *sql.Rows, kind stat.Kind) ([]stat.Stat, error) {
	var out []stat.Stat
	for rows.Next() {
		s, err := scanStatRow(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("scan stat row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stat rows: %w", err)
	}
	return out, nil
}

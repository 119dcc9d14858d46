package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/aevon-lab/project-locus/internal/api/v1"
	"github.com/aevon-lab/project-locus/internal/core/stat"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("record already exists")

// ErrUnsupportedSource is returned for distinct counts over a collection
// that has no identity key (plain location measures).
var ErrUnsupportedSource = errors.New("source has no identity key")

// MeasureWriter inserts raw measurement rows inside one transaction.
type MeasureWriter interface {
	// InsertMeasure stores a location row and returns its ID.
	// Cells and Wifis on m are ignored; insert them with the returned ID.
	InsertMeasure(ctx context.Context, m v1.Measure) (int64, error)
	InsertCellMeasure(ctx context.Context, measureID int64, c v1.CellMeasure) error
	InsertWifiMeasure(ctx context.Context, measureID int64, w v1.WifiMeasure) error
}

// MeasureStore is the append-only raw measurement collection.
type MeasureStore interface {
	// WithTx runs fn in a transaction. Any error returned by fn, or a failed
	// commit, rolls back every row written through the writer.
	WithTx(ctx context.Context, fn func(w MeasureWriter) error) error

	// CountByDay returns row counts keyed by created day for from <= created < to.
	// Days without rows are absent from the map.
	CountByDay(ctx context.Context, source stat.Source, from, to time.Time) (map[time.Time]int64, error)

	// CountDistinctBefore counts distinct identity keys among rows with created < before.
	// Returns ErrUnsupportedSource for stat.SourceMeasure.
	CountDistinctBefore(ctx context.Context, source stat.Source, before time.Time) (int64, error)

	// CountMeasures returns the total number of rows in a collection.
	CountMeasures(ctx context.Context, source stat.Source) (int64, error)
}

// StatStore persists daily counters. At most one row exists per (kind, day).
type StatStore interface {
	// ExistingStats returns the rows of kind whose day is in days, ordered by day.
	ExistingStats(ctx context.Context, kind stat.Kind, days []time.Time) ([]stat.Stat, error)

	// InsertIfAbsent writes s unless a row for (s.Kind, s.Day) exists.
	// Returns false, nil when the row was already present; never overwrites.
	InsertIfAbsent(ctx context.Context, s stat.Stat) (bool, error)

	// QueryRange returns rows of kind with from <= day < to, ordered by day.
	QueryRange(ctx context.Context, kind stat.Kind, from, to time.Time) ([]stat.Stat, error)

	// Latest returns the most recent row of kind; ok is false when none exists.
	Latest(ctx context.Context, kind stat.Kind) (s stat.Stat, ok bool, err error)

	// Total sums the values of every row of kind.
	Total(ctx context.Context, kind stat.Kind) (int64, error)
}

// SaveMeasure writes m with its cells and wifis through w.
func SaveMeasure(ctx context.Context, w MeasureWriter, m *v1.Measure) (int64, error) {
	id, err := w.InsertMeasure(ctx, *m)
	if err != nil {
		return 0, err
	}
	for _, c := range m.Cells {
		if err := w.InsertCellMeasure(ctx, id, c); err != nil {
			return 0, err
		}
	}
	for _, wf := range m.Wifis {
		if err := w.InsertWifiMeasure(ctx, id, wf); err != nil {
			return 0, err
		}
	}
	return id, nil
}

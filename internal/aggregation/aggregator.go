package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/core/storage"
	"github.com/aevon-lab/project-locus/internal/metrics"
)

// Options controls sweep behavior.
type Options struct {
	// FillEmptyDays writes value=0 rows for non-unique kinds on days without
	// raw data. Unique kinds always record every day.
	FillEmptyDays bool

	// Now returns the current time; today is derived from it once per run.
	Now func() time.Time
}

// Aggregator turns raw measurement counts into write-once daily stat rows.
// It is safe for concurrent use: two runs over the same (kind, day) race
// only on InsertIfAbsent, and the loser's row is dropped.
type Aggregator struct {
	measures storage.MeasureStore
	stats    storage.StatStore
	opts     Options
}

// NewAggregator creates an aggregator reading from measures and writing to stats.
func NewAggregator(measures storage.MeasureStore, stats storage.StatStore, opts Options) *Aggregator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Aggregator{measures: measures, stats: stats, opts: opts}
}

// Run computes and stores the stat rows of kind for every day of window that
// has no row yet. It returns the number of rows newly inserted.
func (a *Aggregator) Run(ctx context.Context, kind stat.Kind, window stat.Window) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("sweep: %w: %d", stat.ErrUnknownKind, int(kind))
	}
	if err := window.Validate(); err != nil {
		return 0, err
	}

	started := time.Now()
	today := stat.Day(a.opts.Now())
	days := window.Days(today)

	existing, err := a.stats.ExistingStats(ctx, kind, days)
	if err != nil {
		return 0, fmt.Errorf("sweep %s: load existing stats: %w", kind, err)
	}
	done := make(map[time.Time]struct{}, len(existing))
	for _, s := range existing {
		done[stat.Day(s.Day)] = struct{}{}
	}

	pending := make([]time.Time, 0, len(days))
	for _, d := range days {
		if _, ok := done[d]; !ok {
			pending = append(pending, d)
		}
	}
	if len(pending) == 0 {
		slog.Debug("[Aggregator] Window already recorded", "kind", kind.String(), "window", window.String())
		return 0, nil
	}

	var rows []stat.Stat
	if kind.Unique() {
		rows, err = a.uniqueCounts(ctx, kind, pending)
	} else {
		rows, err = a.dailyCounts(ctx, kind, window, today, pending)
	}
	if err != nil {
		return 0, err
	}

	added := 0
	for _, s := range rows {
		inserted, err := a.stats.InsertIfAbsent(ctx, s)
		if err != nil {
			return added, fmt.Errorf("sweep %s: insert %s: %w", kind, stat.FormatDay(s.Day), err)
		}
		if !inserted {
			metrics.StatConflicts.WithLabelValues(kind.String()).Inc()
			slog.Debug("[Aggregator] Day written concurrently, skipping",
				"kind", kind.String(),
				"day", stat.FormatDay(s.Day))
			continue
		}
		added++
	}

	metrics.StatRowsInserted.WithLabelValues(kind.String()).Add(float64(added))
	metrics.SweepDuration.WithLabelValues(kind.String()).Observe(time.Since(started).Seconds())

	slog.Info("[Aggregator] Sweep complete",
		"kind", kind.String(),
		"window", window.String(),
		"today", stat.FormatDay(today),
		"pending_days", len(pending),
		"added", added)
	return added, nil
}

// dailyCounts counts rows per created day with a single grouped query.
func (a *Aggregator) dailyCounts(ctx context.Context, kind stat.Kind, window stat.Window, today time.Time, pending []time.Time) ([]stat.Stat, error) {
	from, to := window.Bounds(today)
	counts, err := a.measures.CountByDay(ctx, kind.Source(), from, to)
	if err != nil {
		return nil, fmt.Errorf("sweep %s: count rows: %w", kind, err)
	}

	rows := make([]stat.Stat, 0, len(pending))
	for _, d := range pending {
		n, ok := counts[d]
		if !ok && !a.opts.FillEmptyDays {
			continue
		}
		rows = append(rows, stat.Stat{Kind: kind, Day: d, Value: n})
	}
	return rows, nil
}

// uniqueCounts computes the cumulative number of distinct entities seen on
// or before each day.
func (a *Aggregator) uniqueCounts(ctx context.Context, kind stat.Kind, pending []time.Time) ([]stat.Stat, error) {
	rows := make([]stat.Stat, 0, len(pending))
	for _, d := range pending {
		n, err := a.measures.CountDistinctBefore(ctx, kind.Source(), d.AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("sweep %s: count distinct up to %s: %w", kind, stat.FormatDay(d), err)
		}
		rows = append(rows, stat.Stat{Kind: kind, Day: d, Value: n})
	}
	return rows, nil
}

// Histogram records the daily number of location measures.
func (a *Aggregator) Histogram(ctx context.Context, w stat.Window) (int, error) {
	return a.Run(ctx, stat.KindLocation, w)
}

// CellHistogram records the daily number of cell measures.
func (a *Aggregator) CellHistogram(ctx context.Context, w stat.Window) (int, error) {
	return a.Run(ctx, stat.KindCell, w)
}

// WifiHistogram records the daily number of wifi measures.
func (a *Aggregator) WifiHistogram(ctx context.Context, w stat.Window) (int, error) {
	return a.Run(ctx, stat.KindWifi, w)
}

// UniqueCellHistogram records the running total of distinct cell towers.
func (a *Aggregator) UniqueCellHistogram(ctx context.Context, w stat.Window) (int, error) {
	return a.Run(ctx, stat.KindUniqueCell, w)
}

// UniqueWifiHistogram records the running total of distinct access points.
func (a *Aggregator) UniqueWifiHistogram(ctx context.Context, w stat.Window) (int, error) {
	return a.Run(ctx, stat.KindUniqueWifi, w)
}

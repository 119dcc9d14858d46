package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/metrics"
	"github.com/aevon-lab/project-locus/internal/task"
	"golang.org/x/sync/errgroup"
)

// Scheduler runs the scheduled sweep of every enabled kind on a periodic interval.
// It is stateless: each tick recomputes only the days with no stat row yet.
type Scheduler struct {
	interval   time.Duration
	aggregator *Aggregator
	runner     *task.Runner
	kinds      []stat.Kind
	windows    WindowDefaults
}

// NewScheduler creates a cron scheduler for kinds.
func NewScheduler(
	interval time.Duration,
	aggregator *Aggregator,
	runner *task.Runner,
	kinds []stat.Kind,
	windows WindowDefaults,
) *Scheduler {
	return &Scheduler{
		interval:   interval,
		aggregator: aggregator,
		runner:     runner,
		kinds:      kinds,
		windows:    windows.normalized(),
	}
}

// Start begins periodic sweeps.
// Runs until context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting stat sweep scheduler",
		"interval", s.interval,
		"kinds", len(s.kinds),
		"lookback_days", s.windows.LookbackDays,
		"unique_ago", s.windows.UniqueAgo,
	)

	// Initial sweep so a fresh deployment does not wait a full interval.
	s.SweepAll(ctx) //nolint:errcheck

	for {
		select {
		case <-ticker.C:
			s.SweepAll(ctx) //nolint:errcheck
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

// SweepAll dispatches the scheduled sweep of every kind through the runner
// and waits for all of them. Failures are logged per kind; the first one is
// returned.
func (s *Scheduler) SweepAll(ctx context.Context) error {
	var g errgroup.Group
	added := make([]int, len(s.kinds))

	for i, kind := range s.kinds {
		window := s.windows.ScheduledWindow(kind)
		g.Go(func() error {
			n, err := DispatchSweep(ctx, s.runner, s.aggregator, kind, window).Get(ctx)
			if err != nil {
				metrics.SweepFailures.WithLabelValues(kind.String()).Inc()
				slog.Error("[Scheduler] Sweep failed",
					"kind", kind.String(),
					"window", window.String(),
					"error", err)
				return fmt.Errorf("sweep %s: %w", kind, err)
			}
			added[i] = n
			return nil
		})
	}

	err := g.Wait()

	total := 0
	for _, n := range added {
		total += n
	}
	slog.Info("[Scheduler] Sweep round complete", "kinds", len(s.kinds), "added", total)
	return err
}

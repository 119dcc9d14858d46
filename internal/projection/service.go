package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/project-locus/internal/aggregation"
	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/core/storage"
	"github.com/aevon-lab/project-locus/internal/metrics"
	"github.com/aevon-lab/project-locus/internal/task"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const (
	defaultSeriesDays = 30
	maxSeriesDays     = 366
	defaultCacheSize  = 4096

	summaryKey = "summary"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid stats query")

type dayKey struct {
	kind stat.Kind
	day  int64
}

// Service implements the stats read path and on-demand sweeps.
// Stat rows are never rewritten once recorded, so recorded days are served
// from an LRU after their first load.
type Service struct {
	stats      storage.StatStore
	aggregator *aggregation.Aggregator
	runner     *task.Runner
	windows    aggregation.WindowDefaults

	days  *lru.Cache[dayKey, int64]
	group singleflight.Group
	nowFn func() time.Time
}

// NewService creates a stats service. cacheSize <= 0 selects the default.
func NewService(
	stats storage.StatStore,
	aggregator *aggregation.Aggregator,
	runner *task.Runner,
	windows aggregation.WindowDefaults,
	cacheSize int,
) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	days, err := lru.New[dayKey, int64](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create stat day cache: %w", err)
	}

	return &Service{
		stats:      stats,
		aggregator: aggregator,
		runner:     runner,
		windows:    windows,
		days:       days,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

// Summary returns the global value of every kind. Concurrent callers share
// one load.
func (s *Service) Summary(ctx context.Context) (*SummaryResponse, error) {
	v, err, shared := s.group.Do(summaryKey, func() (interface{}, error) {
		return s.loadSummary(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("[Projection] Summary load shared between callers")
	}
	return v.(*SummaryResponse), nil
}

func (s *Service) loadSummary(ctx context.Context) (*SummaryResponse, error) {
	out := &SummaryResponse{Stats: make(map[string]int64, len(stat.Kinds()))}
	for _, kind := range stat.Kinds() {
		if kind.Unique() {
			latest, ok, err := s.stats.Latest(ctx, kind)
			if err != nil {
				return nil, fmt.Errorf("load latest %s: %w", kind, err)
			}
			if ok {
				out.Stats[kind.String()] = latest.Value
			} else {
				out.Stats[kind.String()] = 0
			}
			continue
		}

		total, err := s.stats.Total(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("load total %s: %w", kind, err)
		}
		out.Stats[kind.String()] = total
	}
	return out, nil
}

// Series returns the recorded days of kind within the last req.Days days,
// today included, in ascending order.
func (s *Service) Series(ctx context.Context, kind stat.Kind, req SeriesRequest) (*SeriesResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", stat.ErrUnknownKind, kind)
	}

	n := req.Days
	if n == 0 {
		n = defaultSeriesDays
	}
	if n < 1 || n > maxSeriesDays {
		return nil, invalidQueryf("days must be between 1 and %d, got %d", maxSeriesDays, req.Days)
	}

	w := stat.Window{Start: n, End: 0}
	today := stat.Day(s.nowFn())
	days := w.Days(today)
	_, to := w.Bounds(today)

	// Absent days may still be filled by a later sweep, so only the leading
	// run of cached days can skip the store.
	values := make([]DayValue, 0, len(days))
	cached := 0
	for _, d := range days {
		v, ok := s.days.Get(dayKey{kind: kind, day: d.Unix()})
		if !ok {
			break
		}
		values = append(values, DayValue{Day: stat.FormatDay(d), Value: v})
		cached++
	}
	metrics.StatCacheHits.Add(float64(cached))

	if cached < len(days) {
		metrics.StatCacheMisses.Add(float64(len(days) - cached))

		rows, err := s.stats.QueryRange(ctx, kind, days[cached], to)
		if err != nil {
			return nil, fmt.Errorf("query %s stats: %w", kind, err)
		}
		for _, row := range rows {
			s.days.Add(dayKey{kind: kind, day: row.Day.Unix()}, row.Value)
			values = append(values, DayValue{Day: stat.FormatDay(row.Day), Value: row.Value})
		}
	}

	resp := &SeriesResponse{
		Kind:   kind.String(),
		Days:   n,
		Values: values,
	}
	if len(values) > 0 {
		resp.DataThrough = values[len(values)-1].Day
	}
	return resp, nil
}

// Sweep runs one sweep of kind through the task runner and waits for it.
func (s *Service) Sweep(ctx context.Context, kind stat.Kind, req SweepRequest) (*SweepResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", stat.ErrUnknownKind, kind)
	}

	w, err := s.windows.Resolve(kind, req.Start, req.End, req.Ago)
	if err != nil {
		return nil, err
	}

	res := aggregation.DispatchSweep(ctx, s.runner, s.aggregator, kind, w)
	added, err := res.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("sweep %s %s: %w", kind, w, err)
	}

	slog.Info("[Projection] On-demand sweep finished",
		"kind", kind.String(),
		"window", w.String(),
		"added", added,
		"attempts", res.Attempts())

	return &SweepResponse{
		Task:   res.ID,
		Kind:   kind.String(),
		Window: w.String(),
		Added:  added,
	}, nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}

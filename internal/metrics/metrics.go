package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StatRowsInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_stat_rows_inserted_total",
			Help: "The total number of daily stat rows written by sweeps",
		},
		[]string{"kind"},
	)
	StatConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_stat_conflicts_total",
			Help: "Stat inserts skipped because a concurrent sweep wrote the day first",
		},
		[]string{"kind"},
	)
	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "locus_sweep_duration_seconds",
			Help:    "Duration of one day-range sweep",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	SweepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_sweep_failures_total",
			Help: "The total number of sweeps that returned an error",
		},
		[]string{"kind"},
	)

	TaskAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_task_attempts_total",
			Help: "The total number of task executions, retries included",
		},
		[]string{"task"},
	)
	TaskRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_task_retries_total",
			Help: "The total number of task retries",
		},
		[]string{"task"},
	)
	TaskFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_task_failures_total",
			Help: "The total number of tasks that failed terminally",
		},
		[]string{"task"},
	)
	TasksInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "locus_tasks_in_flight",
		Help: "Tasks currently holding a worker slot",
	})

	MeasuresInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_measures_inserted_total",
			Help: "Raw measurement rows persisted by the insertion task",
		},
		[]string{"source"},
	)
	SubmissionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "locus_submissions_rejected_total",
		Help: "Submissions rejected by validation",
	})

	StatCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "locus_stat_cache_hits_total",
		Help: "Stat days served from the in-process cache",
	})
	StatCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "locus_stat_cache_misses_total",
		Help: "Stat day range reads that went to the database",
	})
)

package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	v1 "github.com/aevon-lab/project-locus/internal/api/v1"
	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/core/storage"
	"github.com/aevon-lab/project-locus/internal/metrics"
	"github.com/aevon-lab/project-locus/internal/task"
)

// InsertTaskName is the runner name of the insertion job.
const InsertTaskName = "insert_measure"

// InsertTask persists m with its cells and wifis in one transaction.
// Any failure rolls back every row of the unit, so a retry starts clean.
func InsertTask(store storage.MeasureStore, m v1.Measure) task.Func[int64] {
	return func(ctx context.Context) (int64, error) {
		var id int64
		err := store.WithTx(ctx, func(w storage.MeasureWriter) error {
			var err error
			id, err = storage.SaveMeasure(ctx, w, &m)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("insert measure: %w", err)
		}

		metrics.MeasuresInserted.WithLabelValues(string(stat.SourceMeasure)).Inc()
		metrics.MeasuresInserted.WithLabelValues(string(stat.SourceCell)).Add(float64(len(m.Cells)))
		metrics.MeasuresInserted.WithLabelValues(string(stat.SourceWifi)).Add(float64(len(m.Wifis)))

		slog.Debug("[Ingestion] Measure stored",
			"measure_id", id,
			"created", stat.FormatDay(m.Created),
			"cells", len(m.Cells),
			"wifis", len(m.Wifis))
		return id, nil
	}
}

// DispatchInsert queues an insertion task on the runner.
func DispatchInsert(ctx context.Context, r *task.Runner, store storage.MeasureStore, m v1.Measure, opts ...task.Option) *task.Result[int64] {
	return task.Delay(ctx, r, InsertTaskName, InsertTask(store, m), opts...)
}

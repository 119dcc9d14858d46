package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	v1 "github.com/aevon-lab/project-locus/internal/api/v1"
	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/core/storage"
	"github.com/aevon-lab/project-locus/internal/core/storage/sqlite/sqlitetest"
	"github.com/aevon-lab/project-locus/internal/task"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

// provokeDuplicate inserts a measure and then, while counter < fails, a second
// row reusing the first row's ID so the transaction fails.
func provokeDuplicate(store storage.MeasureStore, counter *int, fails int) task.Func[int64] {
	return func(ctx context.Context) (int64, error) {
		*counter++
		var id int64
		err := store.WithTx(ctx, func(w storage.MeasureWriter) error {
			var err error
			id, err = w.InsertMeasure(ctx, v1.Measure{Created: created})
			if err != nil {
				return err
			}
			if *counter < fails {
				_, err = w.InsertMeasure(ctx, v1.Measure{ID: id, Created: created})
			}
			return err
		})
		return id, err
	}
}

func countMeasures(t *testing.T, s storage.MeasureStore) int64 {
	t.Helper()
	n, err := s.CountMeasures(context.Background(), stat.SourceMeasure)
	require.NoError(t, err)
	return n
}

func TestInsertTask_Stores(t *testing.T) {
	stores := sqlitetest.New(t)
	runner := task.NewRunner(1, task.DefaultPolicy())

	m := v1.Measure{
		Created:  created,
		Position: v1.Position{Lat: 123456780, Lon: 234567890},
		Cells:    []v1.CellMeasure{{Created: created, Radio: v1.RadioLTE, MCC: 262, MNC: 2, LAC: 1, CID: 10}},
		Wifis:    []v1.WifiMeasure{{Created: created, Key: "aa"}, {Created: created, Key: "bb"}},
	}

	res := DispatchInsert(context.Background(), runner, stores.Measures, m)
	id, err := res.Get(context.Background())
	require.NoError(t, err)
	require.NotZero(t, id)
	require.True(t, res.Successful())

	require.Equal(t, int64(1), countMeasures(t, stores.Measures))
	n, err := stores.Measures.CountMeasures(context.Background(), stat.SourceWifi)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestInsertTask_FailAlwaysExhaustsRetries(t *testing.T) {
	stores := sqlitetest.New(t)
	runner := task.NewRunner(1, task.Policy{MaxRetries: 3})

	counter := 0
	res := task.Delay(context.Background(), runner, InsertTaskName, provokeDuplicate(stores.Measures, &counter, 10))
	_, err := res.Get(context.Background())

	require.ErrorIs(t, err, storage.ErrDuplicate)
	var exhausted *task.RetriesExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, 4, counter)
	require.Equal(t, 4, res.Attempts())
	require.False(t, res.Successful())
	require.Zero(t, countMeasures(t, stores.Measures), "failed attempts must not leave rows behind")
}

func TestInsertTask_SucceedsOnceCounterReachesFails(t *testing.T) {
	stores := sqlitetest.New(t)
	runner := task.NewRunner(1, task.Policy{MaxRetries: 3})

	counter := 0
	res := task.Delay(context.Background(), runner, InsertTaskName, provokeDuplicate(stores.Measures, &counter, 1))
	_, err := res.Get(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, counter)
	require.Equal(t, int64(1), countMeasures(t, stores.Measures))
}

// flakyStore fails the first `failures` transactions after writing through them.
type flakyStore struct {
	storage.MeasureStore
	failures int
	calls    int
}

var errConnReset = errors.New("connection reset by peer")

func (f *flakyStore) WithTx(ctx context.Context, fn func(storage.MeasureWriter) error) error {
	f.calls++
	return f.MeasureStore.WithTx(ctx, func(w storage.MeasureWriter) error {
		if err := fn(w); err != nil {
			return err
		}
		if f.calls <= f.failures {
			return errConnReset
		}
		return nil
	})
}

func TestInsertTask_RetryWritesUnitOnce(t *testing.T) {
	stores := sqlitetest.New(t)
	store := &flakyStore{MeasureStore: stores.Measures, failures: 2}
	runner := task.NewRunner(1, task.Policy{MaxRetries: 3})

	var attempts []error
	m := v1.Measure{
		Created: created,
		Cells:   []v1.CellMeasure{{Created: created, Radio: v1.RadioGSM, MCC: 1, MNC: 1, LAC: 1, CID: 1}},
	}
	res := DispatchInsert(context.Background(), runner, store, m, task.WithOnAttempt(func(_ int, err error) {
		attempts = append(attempts, err)
	}))

	_, err := res.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, attempts, 3)
	require.ErrorIs(t, attempts[0], errConnReset)
	require.NoError(t, attempts[2])

	require.Equal(t, int64(1), countMeasures(t, stores.Measures))
	n, err := stores.Measures.CountMeasures(context.Background(), stat.SourceCell)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

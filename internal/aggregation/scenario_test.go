package aggregation_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"testing"
	"time"

	"github.com/aevon-lab/project-locus/internal/aggregation"
	v1 "github.com/aevon-lab/project-locus/internal/api/v1"
	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/core/storage"
	"github.com/aevon-lab/project-locus/internal/core/storage/sqlite/sqlitetest"
	"github.com/aevon-lab/project-locus/internal/task"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

var (
	today     = stat.Day(now)
	yesterday = today.AddDate(0, 0, -1)
	twoDays   = today.AddDate(0, 0, -2)
	longAgo   = today.AddDate(0, 0, -40)
)

func setup(t *testing.T) (*sqlitetest.Stores, *aggregation.Aggregator, *task.Runner) {
	t.Helper()
	stores := sqlitetest.New(t)
	agg := aggregation.NewAggregator(stores.Measures, stores.Stats, aggregation.Options{
		Now: func() time.Time { return now },
	})
	return stores, agg, task.NewRunner(2, task.Policy{MaxRetries: 0})
}

func seed(t *testing.T, s storage.MeasureStore, measures ...v1.Measure) {
	t.Helper()
	ctx := context.Background()
	for _, m := range measures {
		err := s.WithTx(ctx, func(w storage.MeasureWriter) error {
			_, err := storage.SaveMeasure(ctx, w, &m)
			return err
		})
		require.NoError(t, err)
	}
}

func sweep(t *testing.T, r *task.Runner, a *aggregation.Aggregator, kind stat.Kind, w stat.Window) int {
	t.Helper()
	added, err := aggregation.DispatchSweep(context.Background(), r, a, kind, w).Get(context.Background())
	require.NoError(t, err)
	return added
}

func window(t *testing.T, start, end int) stat.Window {
	t.Helper()
	w, err := stat.NewWindow(start, end)
	require.NoError(t, err)
	return w
}

func ago(t *testing.T, n int) stat.Window {
	t.Helper()
	w, err := stat.Ago(n)
	require.NoError(t, err)
	return w
}

func allStats(t *testing.T, stores *sqlitetest.Stores, kind stat.Kind) []stat.Stat {
	t.Helper()
	rows, err := stores.Stats.QueryRange(context.Background(), kind, longAgo.AddDate(0, 0, -365), today.AddDate(0, 0, 1))
	require.NoError(t, err)
	return rows
}

func wifiKey(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func measureOn(day time.Time) v1.Measure {
	return v1.Measure{
		Created:  day,
		Position: v1.Position{Lat: 10000000, Lon: 20000000},
		Wifis:    []v1.WifiMeasure{{Created: day, Key: "a"}},
	}
}

func TestHistogram_WindowExactnessAndIdempotence(t *testing.T) {
	stores, agg, runner := setup(t)
	seed(t, stores.Measures,
		measureOn(today), measureOn(today),
		measureOn(yesterday),
		measureOn(twoDays), measureOn(twoDays), measureOn(twoDays),
		measureOn(longAgo),
	)

	require.Equal(t, 3, sweep(t, runner, agg, stat.KindLocation, window(t, 30, 0)))

	rows := allStats(t, stores, stat.KindLocation)
	require.Equal(t, []stat.Stat{
		{Kind: stat.KindLocation, Day: twoDays, Value: 3},
		{Kind: stat.KindLocation, Day: yesterday, Value: 1},
		{Kind: stat.KindLocation, Day: today, Value: 2},
	}, rows)

	require.Equal(t, 1, sweep(t, runner, agg, stat.KindLocation, window(t, 60, 30)))

	rows = allStats(t, stores, stat.KindLocation)
	require.Len(t, rows, 4)
	require.Equal(t, stat.Stat{Kind: stat.KindLocation, Day: longAgo, Value: 1}, rows[0])

	// Re-running the same window adds nothing.
	require.Zero(t, sweep(t, runner, agg, stat.KindLocation, window(t, 30, 0)))
	require.Len(t, allStats(t, stores, stat.KindLocation), 4)
}

func TestCellHistogram_WindowExactnessAndIdempotence(t *testing.T) {
	stores, agg, runner := setup(t)

	cellOn := func(day time.Time) v1.Measure {
		return v1.Measure{
			Created: day,
			Cells:   []v1.CellMeasure{{Created: day, Radio: v1.RadioGSM, MCC: 1, MNC: 2, LAC: 3, CID: 4}},
		}
	}
	seed(t, stores.Measures,
		cellOn(today), cellOn(today),
		cellOn(yesterday),
		cellOn(twoDays), cellOn(twoDays), cellOn(twoDays),
		cellOn(longAgo),
	)

	require.Equal(t, 3, sweep(t, runner, agg, stat.KindCell, window(t, 30, 0)))
	rows := allStats(t, stores, stat.KindCell)
	require.Len(t, rows, 3)
	require.Equal(t, []int64{3, 1, 2}, values(rows))

	require.Equal(t, 1, sweep(t, runner, agg, stat.KindCell, window(t, 60, 30)))
	rows = allStats(t, stores, stat.KindCell)
	require.Len(t, rows, 4)
	require.Equal(t, longAgo, rows[0].Day)

	require.Zero(t, sweep(t, runner, agg, stat.KindCell, window(t, 30, 0)))
}

func TestWifiHistogram_WindowExactnessAndIdempotence(t *testing.T) {
	stores, agg, runner := setup(t)
	seed(t, stores.Measures,
		measureOn(today), measureOn(today),
		measureOn(yesterday),
		measureOn(twoDays), measureOn(twoDays), measureOn(twoDays),
		measureOn(longAgo),
	)

	require.Equal(t, 3, sweep(t, runner, agg, stat.KindWifi, window(t, 30, 0)))
	require.Equal(t, []int64{3, 1, 2}, values(allStats(t, stores, stat.KindWifi)))

	require.Equal(t, 1, sweep(t, runner, agg, stat.KindWifi, window(t, 60, 30)))
	require.Len(t, allStats(t, stores, stat.KindWifi), 4)

	require.Zero(t, sweep(t, runner, agg, stat.KindWifi, window(t, 30, 0)))
}

func TestUniqueCellHistogram_Cumulative(t *testing.T) {
	stores, agg, runner := setup(t)

	tower := func(day time.Time, radio, mcc, mnc, lac, cid int) v1.Measure {
		return v1.Measure{
			Created: day,
			Cells:   []v1.CellMeasure{{Created: day, Radio: radio, MCC: mcc, MNC: mnc, LAC: lac, CID: cid}},
		}
	}
	seed(t, stores.Measures,
		tower(longAgo, 0, 1, 2, 3, 4),
		tower(twoDays, 2, 1, 2, 3, 4),
		tower(twoDays, 0, 1, 2, 3, 4),
		tower(twoDays, 0, 2, 2, 3, 4),
		tower(yesterday, 0, 2, 2, 3, 5),
		tower(today, 0, 1, 3, 3, 4),
		tower(today, 0, 1, 2, 4, 4),
	)

	require.Equal(t, 1, sweep(t, runner, agg, stat.KindUniqueCell, ago(t, 40)))
	rows := allStats(t, stores, stat.KindUniqueCell)
	require.Equal(t, []stat.Stat{{Kind: stat.KindUniqueCell, Day: longAgo, Value: 1}}, rows)

	for _, n := range []int{2, 1, 0} {
		require.Equal(t, 1, sweep(t, runner, agg, stat.KindUniqueCell, ago(t, n)))
	}

	rows = allStats(t, stores, stat.KindUniqueCell)
	require.Equal(t, []stat.Stat{
		{Kind: stat.KindUniqueCell, Day: longAgo, Value: 1},
		{Kind: stat.KindUniqueCell, Day: twoDays, Value: 3},
		{Kind: stat.KindUniqueCell, Day: yesterday, Value: 4},
		{Kind: stat.KindUniqueCell, Day: today, Value: 6},
	}, rows)

	defaults := aggregation.WindowDefaults{LookbackDays: 30, UniqueAgo: 1}
	require.Zero(t, sweep(t, runner, agg, stat.KindUniqueCell, defaults.DefaultWindow(stat.KindUniqueCell)))
}

func TestUniqueWifiHistogram_Cumulative(t *testing.T) {
	stores, agg, runner := setup(t)
	k1, k2, k3 := wifiKey("1"), wifiKey("2"), wifiKey("3")

	ap := func(day time.Time, key string) v1.Measure {
		return v1.Measure{
			Created:  day,
			Position: v1.Position{Lat: 10000000, Lon: 20000000},
			Wifis:    []v1.WifiMeasure{{Created: day, Key: key}},
		}
	}
	seed(t, stores.Measures,
		ap(longAgo, k1),
		ap(twoDays, k1),
		ap(twoDays, k2),
		ap(twoDays, k1),
		ap(yesterday, k3),
		ap(today, k2),
		ap(today, k3),
	)

	require.Equal(t, 1, sweep(t, runner, agg, stat.KindUniqueWifi, ago(t, 40)))
	require.Equal(t, []int64{1}, values(allStats(t, stores, stat.KindUniqueWifi)))

	for _, n := range []int{2, 1, 0} {
		sweep(t, runner, agg, stat.KindUniqueWifi, ago(t, n))
	}

	rows := allStats(t, stores, stat.KindUniqueWifi)
	require.Len(t, rows, 4)
	require.Equal(t, []time.Time{longAgo, twoDays, yesterday, today}, days(rows))
	require.Equal(t, []int64{1, 2, 3, 3}, values(rows))

	defaults := aggregation.WindowDefaults{LookbackDays: 30, UniqueAgo: 1}
	require.Zero(t, sweep(t, runner, agg, stat.KindUniqueWifi, defaults.DefaultWindow(stat.KindUniqueWifi)))
}

func TestUniqueHistogram_EmptyDayStillRecorded(t *testing.T) {
	stores, agg, runner := setup(t)

	require.Equal(t, 1, sweep(t, runner, agg, stat.KindUniqueCell, ago(t, 3)))
	require.Equal(t, []stat.Stat{{Kind: stat.KindUniqueCell, Day: today.AddDate(0, 0, -3), Value: 0}},
		allStats(t, stores, stat.KindUniqueCell))

	require.Zero(t, sweep(t, runner, agg, stat.KindUniqueCell, ago(t, 3)))
}

func TestSweep_InvalidWindowIsPermanent(t *testing.T) {
	_, agg, _ := setup(t)
	runner := task.NewRunner(1, task.Policy{MaxRetries: 3})

	res := aggregation.DispatchSweep(context.Background(), runner, agg, stat.KindLocation, stat.Window{Start: 1, End: 1})
	_, err := res.Get(context.Background())
	require.ErrorIs(t, err, stat.ErrInvalidWindow)
	require.Equal(t, 1, res.Attempts())
}

func values(rows []stat.Stat) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}
	return out
}

func days(rows []stat.Stat) []time.Time {
	out := make([]time.Time, len(rows))
	for i, r := range rows {
		out[i] = r.Day
	}
	return out
}

package aggregation

import (
	"context"
	"errors"
	"fmt"

	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/task"
)

const (
	defaultLookbackDays = 30
	defaultUniqueAgo    = 1
)

var taskNames = map[stat.Kind]string{
	stat.KindLocation:   "histogram",
	stat.KindCell:       "cell_histogram",
	stat.KindWifi:       "wifi_histogram",
	stat.KindUniqueCell: "unique_cell_histogram",
	stat.KindUniqueWifi: "unique_wifi_histogram",
}

// TaskName is the runner name of the sweep job for kind.
func TaskName(kind stat.Kind) string {
	if n, ok := taskNames[kind]; ok {
		return n
	}
	return "histogram_" + kind.String()
}

// WindowDefaults holds the default sweep windows.
type WindowDefaults struct {
	// LookbackDays is how many days back non-unique kinds are swept.
	LookbackDays int
	// UniqueAgo is the single day swept for unique kinds (Ago(UniqueAgo)).
	UniqueAgo int
}

func (d WindowDefaults) normalized() WindowDefaults {
	n := d
	if n.LookbackDays <= 0 {
		n.LookbackDays = defaultLookbackDays
	}
	if n.LookbackDays >= stat.MaxWindowOffset {
		n.LookbackDays = stat.MaxWindowOffset - 1
	}
	if n.UniqueAgo < 0 || n.UniqueAgo >= stat.MaxWindowOffset {
		n.UniqueAgo = defaultUniqueAgo
	}
	return n
}

// DefaultWindow returns the window an on-demand sweep of kind covers when
// no bounds are given. Non-unique kinds include today.
func (d WindowDefaults) DefaultWindow(kind stat.Kind) stat.Window {
	d = d.normalized()
	if kind.Unique() {
		return stat.Window{Start: d.UniqueAgo + 1, End: d.UniqueAgo}
	}
	return stat.Window{Start: d.LookbackDays, End: 0}
}

// ScheduledWindow returns the window the periodic sweep of kind covers.
// Stat rows are write-once, so it only reaches completed days: sweeping
// today would freeze a partial count for the rest of the day.
func (d WindowDefaults) ScheduledWindow(kind stat.Kind) stat.Window {
	d = d.normalized()
	if kind.Unique() {
		ago := max(d.UniqueAgo, 1)
		return stat.Window{Start: ago + 1, End: ago}
	}
	return stat.Window{Start: d.LookbackDays + 1, End: 1}
}

// Resolve builds the window of an on-demand sweep. ago selects a single day
// and excludes start/end; unset bounds fall back to DefaultWindow(kind).
func (d WindowDefaults) Resolve(kind stat.Kind, start, end, ago *int) (stat.Window, error) {
	if ago != nil {
		if start != nil || end != nil {
			return stat.Window{}, fmt.Errorf("%w: ago cannot be combined with start or end", stat.ErrInvalidWindow)
		}
		return stat.Ago(*ago)
	}

	w := d.DefaultWindow(kind)
	if start != nil {
		w.Start = *start
	}
	if end != nil {
		w.End = *end
	}
	if err := w.Validate(); err != nil {
		return stat.Window{}, err
	}
	return w, nil
}

// SweepTask wraps one sweep as a task body. Invalid windows and unknown
// kinds fail permanently; storage errors are retried by the runner.
func SweepTask(a *Aggregator, kind stat.Kind, w stat.Window) task.Func[int] {
	return func(ctx context.Context) (int, error) {
		added, err := a.Run(ctx, kind, w)
		if errors.Is(err, stat.ErrInvalidWindow) || errors.Is(err, stat.ErrUnknownKind) {
			return added, task.Permanent(err)
		}
		return added, err
	}
}

// DispatchSweep runs the sweep of kind over w on the runner.
func DispatchSweep(ctx context.Context, r *task.Runner, a *Aggregator, kind stat.Kind, w stat.Window) *task.Result[int] {
	return task.Delay(ctx, r, TaskName(kind), SweepTask(a, kind, w))
}

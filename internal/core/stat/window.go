package stat

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow marks day ranges that violate start > end >= 0.
var ErrInvalidWindow = errors.New("invalid day window")

const dayLayout = "2006-01-02"

// MaxWindowOffset bounds how far back a window may reach, roughly ten years.
const MaxWindowOffset = 3660

// Day truncates t to its UTC calendar date.
// This is the atomic unit of stat storage.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return Day(t).Format(dayLayout)
}

// ParseDay parses a YYYY-MM-DD date into a UTC day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return t, nil
}

// Window is a range of day offsets relative to "today".
// It covers offsets [End, Start): Start=30, End=0 is today plus the 29 days before it.
type Window struct {
	Start int
	End   int
}

// NewWindow validates start > end >= 0.
func NewWindow(start, end int) (Window, error) {
	w := Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Ago is the single-day window for the day n days before today.
func Ago(n int) (Window, error) {
	return NewWindow(n+1, n)
}

// Validate checks start > end >= 0 and start <= MaxWindowOffset.
func (w Window) Validate() error {
	if w.End < 0 {
		return fmt.Errorf("%w: end must be >= 0, got %d", ErrInvalidWindow, w.End)
	}
	if w.Start <= w.End {
		return fmt.Errorf("%w: start (%d) must be greater than end (%d)", ErrInvalidWindow, w.Start, w.End)
	}
	if w.Start > MaxWindowOffset {
		return fmt.Errorf("%w: start must be <= %d, got %d", ErrInvalidWindow, MaxWindowOffset, w.Start)
	}
	return nil
}

// Days lists the calendar days covered by the window in ascending order.
func (w Window) Days(today time.Time) []time.Time {
	today = Day(today)
	days := make([]time.Time, 0, w.Start-w.End)
	for offset := w.Start - 1; offset >= w.End; offset-- {
		days = append(days, today.AddDate(0, 0, -offset))
	}
	return days
}

// Bounds returns [from, to) covering Days(today).
func (w Window) Bounds(today time.Time) (time.Time, time.Time) {
	today = Day(today)
	return today.AddDate(0, 0, -(w.Start - 1)), today.AddDate(0, 0, -w.End+1)
}

func (w Window) String() string {
	return fmt.Sprintf("[%d,%d)", w.End, w.Start)
}

package stat

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		end       int
		wantError bool
	}{
		{name: "routine sweep", start: 30, end: 0},
		{name: "older range", start: 60, end: 30},
		{name: "single day", start: 1, end: 0},
		{name: "empty invalid", start: 5, end: 5, wantError: true},
		{name: "reversed invalid", start: 0, end: 3, wantError: true},
		{name: "negative end invalid", start: 2, end: -1, wantError: true},
		{name: "widest allowed", start: MaxWindowOffset, end: 0},
		{name: "past max offset", start: MaxWindowOffset + 1, end: 0, wantError: true},
		{name: "max int start", start: math.MaxInt, end: 0, wantError: true},
		{name: "max int single day", start: math.MaxInt, end: math.MaxInt - 1, wantError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := NewWindow(tc.start, tc.end)
			if tc.wantError {
				require.ErrorIs(t, err, ErrInvalidWindow)
				return
			}
			require.NoError(t, err)
			require.Equal(t, Window{Start: tc.start, End: tc.end}, w)
		})
	}
}

func TestWindow_Days(t *testing.T) {
	today := time.Date(2026, 3, 2, 17, 45, 0, 0, time.UTC)

	w, err := NewWindow(3, 0)
	require.NoError(t, err)
	require.Equal(t, []time.Time{
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}, w.Days(today))

	older, err := NewWindow(60, 30)
	require.NoError(t, err)
	days := older.Days(today)
	require.Len(t, days, 30)
	require.Equal(t, Day(today).AddDate(0, 0, -59), days[0])
	require.Equal(t, Day(today).AddDate(0, 0, -30), days[len(days)-1])
}

func TestAgo(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	w, err := Ago(40)
	require.NoError(t, err)
	require.Equal(t, Window{Start: 41, End: 40}, w)
	require.Equal(t, []time.Time{today.AddDate(0, 0, -40)}, w.Days(today))

	zero, err := Ago(0)
	require.NoError(t, err)
	require.Equal(t, []time.Time{today}, zero.Days(today))

	_, err = Ago(-1)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Ago(math.MaxInt)
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestWindow_Bounds(t *testing.T) {
	today := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	w, err := NewWindow(30, 0)
	require.NoError(t, err)

	from, to := w.Bounds(today)
	days := w.Days(today)
	require.Equal(t, days[0], from)
	require.Equal(t, days[len(days)-1].AddDate(0, 0, 1), to)
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	ts := time.Date(2026, 2, 11, 3, 35, 42, 123456789, loc)

	require.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Day(ts))
	require.Equal(t, "2026-02-10", FormatDay(ts))

	parsed, err := ParseDay("2026-02-10")
	require.NoError(t, err)
	require.Equal(t, Day(ts), parsed)

	_, err = ParseDay("10/02/2026")
	require.Error(t, err)
}

package projection

import (
	"github.com/google/uuid"
)

// SeriesRequest holds the query parameters of GET /v1/stats/:kind.
type SeriesRequest struct {
	Days int `form:"days"` // default: 30, max: 366
}

// SweepRequest holds the query parameters of POST /v1/stats/:kind/sweep.
// Ago selects a single day and cannot be combined with Start/End; unset
// fields fall back to the kind's scheduled window.
type SweepRequest struct {
	Start *int `form:"start"`
	End   *int `form:"end"`
	Ago   *int `form:"ago"`
}

// DayValue is one recorded day of a series.
type DayValue struct {
	Day   string `json:"day"`
	Value int64  `json:"value"`
}

// SeriesResponse is the daily series of one stat kind.
type SeriesResponse struct {
	Kind        string     `json:"kind"`
	Days        int        `json:"days"`
	DataThrough string     `json:"data_through,omitempty"`
	Values      []DayValue `json:"values"`
}

// SummaryResponse maps every kind name to its global value: the sum of all
// daily rows for per-day kinds, the latest cumulative row for unique kinds.
type SummaryResponse struct {
	Stats map[string]int64 `json:"stats"`
}

// SweepResponse reports a completed on-demand sweep.
type SweepResponse struct {
	Task   uuid.UUID `json:"task"`
	Kind   string    `json:"kind"`
	Window string    `json:"window"`
	Added  int       `json:"added"`
}

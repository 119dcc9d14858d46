package v1

import (
	"time"
)

// CoordinateFactor scales decimal degrees into the fixed-point integers stored
// in lat/lon columns (1 degree == 10^7).
const CoordinateFactor = 10_000_000

// Radio codes persisted in the radio columns.
const (
	RadioUnknown = -1
	RadioGSM     = 0
	RadioCDMA    = 1
	RadioUMTS    = 2
	RadioLTE     = 3
)

var radioCodes = map[string]int{
	"":     RadioUnknown,
	"gsm":  RadioGSM,
	"cdma": RadioCDMA,
	"umts": RadioUMTS,
	"lte":  RadioLTE,
}

// Position is the fixed-point location shared by every measurement row.
type Position struct {
	Lat              int64
	Lon              int64
	Accuracy         int
	Altitude         int
	AltitudeAccuracy int
}

// Measure is one raw location observation. Every row is counted by the
// location histogram regardless of the cell or wifi data attached to it.
type Measure struct {
	// ID is assigned by the store. A non-zero ID is inserted verbatim.
	ID int64

	// Created is the UTC calendar day the measurement was accepted.
	// Aggregation buckets rows on this field, not on Time.
	Created time.Time

	// Time is the device-reported observation time; zero means unknown.
	Time time.Time

	Position
	Radio int

	Cells []CellMeasure
	Wifis []WifiMeasure
}

// CellMeasure is one cell-tower reading. (Radio, MCC, MNC, LAC, CID) is the
// identity of the tower for distinct counting.
type CellMeasure struct {
	ID        int64
	MeasureID int64
	Created   time.Time
	Time      time.Time
	Position

	Radio  int
	MCC    int
	MNC    int
	LAC    int
	CID    int
	PSC    int
	ASU    int
	Signal int
	TA     int
}

// WifiMeasure is one access-point reading identified by Key.
type WifiMeasure struct {
	ID        int64
	MeasureID int64
	Created   time.Time
	Time      time.Time
	Position

	Key     string
	Channel int
	Signal  int
}

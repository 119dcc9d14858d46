package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/golang/geo/s2"
	"github.com/shopspring/decimal"
)

const (
	maxMCC       = 999
	maxMNC       = 32767
	maxLAC       = 65535
	maxCID       = 268435455
	maxWifiKeyLn = 40
)

// Submission is the body of POST /v1/submit.
type Submission struct {
	Items []SubmitItem `json:"items"`
}

// SubmitItem is one device report: a position plus the cells and access
// points observed at that position.
type SubmitItem struct {
	Lat              decimal.NullDecimal `json:"lat"`
	Lon              decimal.NullDecimal `json:"lon"`
	Time             time.Time           `json:"time"`
	Accuracy         int                 `json:"accuracy"`
	Altitude         int                 `json:"altitude"`
	AltitudeAccuracy int                 `json:"altitude_accuracy"`
	Radio            string              `json:"radio"`

	Cell []SubmitCell `json:"cell"`
	Wifi []SubmitWifi `json:"wifi"`
}

// SubmitCell is a cell-tower reading inside a SubmitItem.
type SubmitCell struct {
	Radio  string `json:"radio"`
	MCC    int    `json:"mcc"`
	MNC    int    `json:"mnc"`
	LAC    int    `json:"lac"`
	CID    int    `json:"cid"`
	PSC    int    `json:"psc"`
	ASU    int    `json:"asu"`
	Signal int    `json:"signal"`
	TA     int    `json:"ta"`
}

// SubmitWifi is an access-point reading inside a SubmitItem.
type SubmitWifi struct {
	Key       string `json:"key"`
	Channel   int    `json:"channel"`
	Frequency int    `json:"frequency"`
	Signal    int    `json:"signal"`
}

// Validate checks the envelope of a submission.
func (s *Submission) Validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("items must not be empty")
	}
	for i := range s.Items {
		if err := s.Items[i].Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks coordinates, radio names and the attached readings.
func (it *SubmitItem) Validate() error {
	if !it.Lat.Valid || !it.Lon.Valid {
		return fmt.Errorf("lat and lon are required")
	}
	ll := s2.LatLngFromDegrees(it.Lat.Decimal.InexactFloat64(), it.Lon.Decimal.InexactFloat64())
	if !ll.IsValid() {
		return fmt.Errorf("coordinates out of range: lat=%s lon=%s", it.Lat.Decimal, it.Lon.Decimal)
	}
	if _, err := ParseRadio(it.Radio); err != nil {
		return err
	}
	for i, c := range it.Cell {
		if err := c.validate(); err != nil {
			return fmt.Errorf("cell[%d]: %w", i, err)
		}
	}
	for i, w := range it.Wifi {
		if NormalizeWifiKey(w.Key) == "" {
			return fmt.Errorf("wifi[%d]: invalid key %q", i, w.Key)
		}
	}
	return nil
}

func (c SubmitCell) validate() error {
	if _, err := ParseRadio(c.Radio); err != nil {
		return err
	}
	if c.MCC < 1 || c.MCC > maxMCC {
		return fmt.Errorf("mcc %d out of range", c.MCC)
	}
	if c.MNC < 0 || c.MNC > maxMNC {
		return fmt.Errorf("mnc %d out of range", c.MNC)
	}
	if c.LAC < 0 || c.LAC > maxLAC {
		return fmt.Errorf("lac %d out of range", c.LAC)
	}
	if c.CID < 0 || c.CID > maxCID {
		return fmt.Errorf("cid %d out of range", c.CID)
	}
	return nil
}

// ToMeasure converts a validated item into storable rows. created is stamped
// with the UTC day of now; a missing device time falls back to now.
func (it *SubmitItem) ToMeasure(now time.Time) (*Measure, error) {
	if err := it.Validate(); err != nil {
		return nil, err
	}

	radio, _ := ParseRadio(it.Radio)
	created := stat.Day(now)
	observed := it.Time.UTC()
	if it.Time.IsZero() {
		observed = now.UTC()
	}

	pos := Position{
		Lat:              ToFixed(it.Lat.Decimal),
		Lon:              ToFixed(it.Lon.Decimal),
		Accuracy:         it.Accuracy,
		Altitude:         it.Altitude,
		AltitudeAccuracy: it.AltitudeAccuracy,
	}

	m := &Measure{
		Created:  created,
		Time:     observed,
		Position: pos,
		Radio:    radio,
	}

	for _, c := range it.Cell {
		cellRadio := radio
		if c.Radio != "" {
			cellRadio, _ = ParseRadio(c.Radio)
		}
		m.Cells = append(m.Cells, CellMeasure{
			Created:  created,
			Time:     observed,
			Position: pos,
			Radio:    cellRadio,
			MCC:      c.MCC,
			MNC:      c.MNC,
			LAC:      c.LAC,
			CID:      c.CID,
			PSC:      c.PSC,
			ASU:      c.ASU,
			Signal:   c.Signal,
			TA:       c.TA,
		})
	}

	for _, w := range it.Wifi {
		m.Wifis = append(m.Wifis, WifiMeasure{
			Created:  created,
			Time:     observed,
			Position: pos,
			Key:      NormalizeWifiKey(w.Key),
			Channel:  w.Channel,
			Signal:   w.Signal,
		})
	}

	return m, nil
}

// ToFixed converts decimal degrees into the stored fixed-point integer.
func ToFixed(deg decimal.Decimal) int64 {
	return deg.Shift(7).Round(0).IntPart()
}

// ParseRadio maps a radio name to its persisted code.
func ParseRadio(name string) (int, error) {
	code, ok := radioCodes[strings.ToLower(name)]
	if !ok {
		return RadioUnknown, fmt.Errorf("unknown radio %q", name)
	}
	return code, nil
}

// NormalizeWifiKey lower-cases a MAC/hash key and strips separators.
// Returns "" for keys that are empty, too long or not hexadecimal.
func NormalizeWifiKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.NewReplacer(":", "", "-", "", ".", "").Replace(key)
	if key == "" || len(key) > maxWifiKeyLn {
		return ""
	}
	for _, r := range key {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return ""
		}
	}
	return key
}

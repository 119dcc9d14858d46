package stat

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownKind is returned when a stat kind name is not recognised.
var ErrUnknownKind = errors.New("unknown stat kind")

// Kind identifies a daily counter. The integer codes are persisted in the
// stat.key column and must never be renumbered.
type Kind int

const (
	KindLocation   Kind = 0
	KindCell       Kind = 1
	KindWifi       Kind = 2
	KindUniqueCell Kind = 3
	KindUniqueWifi Kind = 4
)

// Source names the measurement collection a kind is computed from.
type Source string

const (
	SourceMeasure Source = "measure"
	SourceCell    Source = "cell_measure"
	SourceWifi    Source = "wifi_measure"
)

var kindNames = map[Kind]string{
	KindLocation:   "location",
	KindCell:       "cell",
	KindWifi:       "wifi",
	KindUniqueCell: "unique_cell",
	KindUniqueWifi: "unique_wifi",
}

// Kinds returns every kind in code order.
func Kinds() []Kind {
	return []Kind{KindLocation, KindCell, KindWifi, KindUniqueCell, KindUniqueWifi}
}

// ParseKind maps a symbolic name ("cell", "unique_wifi", ...) to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Unique reports whether the kind counts distinct entities rather than rows.
func (k Kind) Unique() bool {
	return k == KindUniqueCell || k == KindUniqueWifi
}

// Source returns the measurement collection feeding the kind.
func (k Kind) Source() Source {
	switch k {
	case KindCell, KindUniqueCell:
		return SourceCell
	case KindWifi, KindUniqueWifi:
		return SourceWifi
	default:
		return SourceMeasure
	}
}

// Stat is one persisted (kind, day) -> value counter.
type Stat struct {
	Kind  Kind
	Day   time.Time // UTC midnight
	Value int64
}

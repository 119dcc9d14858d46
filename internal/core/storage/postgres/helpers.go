package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/core/storage"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// mapInsertError converts unique-constraint violations to storage.ErrDuplicate.
func mapInsertError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, storage.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullTime stores the zero time as NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func dayParams(days []time.Time) pq.StringArray {
	out := make(pq.StringArray, len(days))
	for i, d := range days {
		out[i] = stat.FormatDay(d)
	}
	return out
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStatRow(row scanner, kind stat.Kind) (stat.Stat, error) {
	var (
		day   time.Time
		value int64
	)
	if err := row.Scan(&day, &value); err != nil {
		return stat.Stat{}, err
	}
	return stat.Stat{Kind: kind, Day: stat.Day(day), Value: value}, nil
}

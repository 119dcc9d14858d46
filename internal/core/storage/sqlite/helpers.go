package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/aevon-lab/project-locus/internal/core/storage"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// mapInsertError converts primary key and unique violations to storage.ErrDuplicate.
func mapInsertError(op string, err error) error {
	var sqlErr *msqlite.Error
	if errors.As(err, &sqlErr) {
		code := sqlErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, code == sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%s: %w", op, storage.ErrDuplicate)
		// Without extended result codes only the primary code is reported.
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqlErr.Error(), "UNIQUE constraint failed"):
			return fmt.Errorf("%s: %w", op, storage.ErrDuplicate)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}

func dayList(days []time.Time) (string, error) {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = stat.FormatDay(d)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode day list: %w", err)
	}
	return string(b), nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStatRow(row scanner, kind stat.Kind) (stat.Stat, error) {
	var (
		day   string
		value int64
	)
	if err := row.Scan(&day, &value); err != nil {
		return stat.Stat{}, err
	}
	d, err := stat.ParseDay(day)
	if err != nil {
		return stat.Stat{}, err
	}
	return stat.Stat{Kind: kind, Day: d, Value: value}, nil
}

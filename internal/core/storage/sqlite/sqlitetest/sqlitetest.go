// Package sqlitetest opens throwaway migrated SQLite databases for tests.
package sqlitetest

import (
	"path/filepath"
	"testing"

	"github.com/aevon-lab/project-locus/internal/core/storage/sqlite"
	"github.com/aevon-lab/project-locus/internal/migrations"
	"github.com/stretchr/testify/require"
)

// Stores bundles both adapters over one database file.
type Stores struct {
	Measures *sqlite.Adapter
	Stats    *sqlite.StatAdapter
}

// New creates a fresh database under t.TempDir() with every migration applied.
// The database is closed when the test ends.
func New(t testing.TB) *Stores {
	t.Helper()

	path := filepath.Join(t.TempDir(), "locus.db")
	db, err := sqlite.Open("file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	require.NoError(t, err)

	require.NoError(t, migrations.RunMigrations(db, migrations.DialectSQLite, true))

	adapter := sqlite.NewAdapter(db)
	t.Cleanup(func() { _ = adapter.Close() })

	return &Stores{
		Measures: adapter,
		Stats:    sqlite.NewStatAdapter(db),
	}
}

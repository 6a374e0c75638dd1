package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// seedSource creates a database file containing the given statements and
// returns its path.
func seedSource(t *testing.T, stmts ...string) string {
	t.Helper()
	return seedSourceAt(t, filepath.Join(t.TempDir(), "source.db"), stmts...)
}

// seedSourceAt is seedSource with an explicit path. The path is handed to the
// driver as a plain file name, so it must not contain '?'.
func seedSourceAt(t *testing.T, path string, stmts ...string) string {
	t.Helper()
	db, err := sql.Open(DriverName, path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "seed statement: %s", stmt)
	}
	return path
}

// openSource opens path with OpenSource and closes it at test cleanup.
func openSource(t *testing.T, path string) *Source {
	t.Helper()
	src, err := OpenSource(path)
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })
	return src
}

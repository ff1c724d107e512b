package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// OpenTestSQLite creates a migrated SQLite pair in a per-test temp dir and
// closes both pools on cleanup. writeDB carries the single-connection
// immediate-transaction pool; tests that never exercise the read/write split
// can ignore readDB.
func OpenTestSQLite(t *testing.T) (writeDB, readDB *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "backoffice.sqlite")

	writeDB, readDB, err := OpenSQLitePair(path, 2)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = readDB.Close()
		_ = writeDB.Close()
	})

	if err := RunMigrations(writeDB); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return writeDB, readDB
}

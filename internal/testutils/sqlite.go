package testutils

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-codex/internal/repositories/profile"
)

// CreateTestSQLiteDB opens a migrated SQLite database in a temp directory
func CreateTestSQLiteDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	db, err := profile.Open(context.Background(), filepath.Join(t.TempDir(), "codex.db"))
	require.NoError(t, err, "failed to open sqlite database")

	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup
}

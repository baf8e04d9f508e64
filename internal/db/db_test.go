package db

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsUpAndDown(t *testing.T) {
	conn := filepath.Join(t.TempDir(), "data", "goals.db")
	database, err := Init(DriverSQLite, conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })

	require.NoError(t, RunMigrations(database.DB, DriverSQLite))

	version, err := Version(database.DB, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	var tables int
	err = database.Get(&tables, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN
		('goals', 'quantitative_goals', 'time_based_goals', 'progress_entries', 'achievement_templates', 'achievement_logs')`)
	require.NoError(t, err)
	assert.Equal(t, 6, tables)

	require.NoError(t, MigrateDown(database.DB, DriverSQLite))
	version, err = Version(database.DB, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestUnsupportedDriver(t *testing.T) {
	err := setupGoose("mysql")
	assert.Error(t, err)
}

func TestNumericColumnsKeepScale(t *testing.T) {
	for _, dir := range migrationDirs {
		files, err := fs.Glob(migrationsFS, dir+"/*.sql")
		require.NoError(t, err)
		require.NotEmpty(t, files)
		for _, f := range files {
			data, err := fs.ReadFile(migrationsFS, f)
			require.NoError(t, err)
			assert.NotContains(t, strings.ToUpper(string(data)), "NUMERIC(", f)
		}
	}
}

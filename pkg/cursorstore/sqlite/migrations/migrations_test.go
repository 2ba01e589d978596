package migrations

import (
	"database/sql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"path/filepath"
	"testing"
)

func TestMigrateLogsSchemaVersion(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "cursors.db"))
	require.NoError(t, err)
	defer db.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core).Sugar()

	require.NoError(t, Migrate(db, log))
	migrated := logs.FilterMessage("migrated cursor schema").All()
	require.Len(t, migrated, 1)
	assert.EqualValues(t, 1, migrated[0].ContextMap()["version"])

	require.NoError(t, Migrate(db, log))
	assert.Equal(t, 1, logs.FilterMessage("cursor schema up to date").Len())

	var count int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM cursors`).Scan(&count))
	assert.Zero(t, count)
}

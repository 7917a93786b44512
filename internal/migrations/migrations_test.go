package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_BaselinePair(t *testing.T) {
	names, err := fs.Glob(MigrationFiles, "*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"000001_create_cost_tables.down.sql",
		"000001_create_cost_tables.up.sql",
	}, names)
}

func TestMigrationFiles_ResultsTableIsAppendOnly(t *testing.T) {
	up, err := fs.ReadFile(MigrationFiles, "000001_create_cost_tables.up.sql")
	require.NoError(t, err)

	sql := strings.ToUpper(string(up))
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS OBJECT_TYPES")
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS RESULTS")
	assert.Contains(t, sql, "REFERENCES OBJECT_TYPES (OBJECT_TYPE)")
	assert.NotContains(t, sql, "UNIQUE")
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilePath(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000001_create_ballot_tables.up.sql", "000001_create_ballot_tables.down.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}

	got, err := migrationFilePath(dir, "create_ballot_tables.up")
	require.NoError(t, err)
	assert.Equal(t, "000001_create_ballot_tables.up.sql", got)

	got, err = migrationFilePath(dir, "000001_create_ballot_tables.down")
	require.NoError(t, err)
	assert.Equal(t, "000001_create_ballot_tables.down.sql", got)

	_, err = migrationFilePath(dir, "drop_everything")
	assert.Error(t, err)
}

func TestMigrationFilesShipped(t *testing.T) {
	content, err := migrationFileContent(filepath.Join("..", "..", "internal", "adapters", "repository", "postgres", "migrations"), "create_ballot_tables.up")
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS ballots")
}

package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_CreatesMevetoUsersTable(t *testing.T) {
	db, err := Initialize(filepath.Join(t.TempDir(), "meveto.db"))
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'meveto_users'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "meveto_users", name)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db, err := Initialize(filepath.Join(t.TempDir(), "meveto.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db))

	applied, err := getAppliedMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_meveto_users"}, applied)
}

func TestLoadMigrations_Sorted(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_second.sql": {Data: []byte("SELECT 2;")},
		"migrations/001_first.sql":  {Data: []byte("SELECT 1;")},
		"migrations/readme.txt":     {Data: []byte("ignored")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)

	require.Len(t, migrations, 2)
	assert.Equal(t, "001_first", migrations[0].Version)
	assert.Equal(t, "002_second.sql", migrations[1].Filename)
	assert.Equal(t, "SELECT 2;", migrations[1].SQL)
}

func TestLoadMigrations_Empty(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{})

	assert.Error(t, err)
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "meveto.db"))

	assert.Error(t, err)
}

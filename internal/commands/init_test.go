package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithun-t/expense-tracker/internal/config"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runExpenses(t, "init", dir)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "data"))
	require.NoError(t, err, "data directory should exist")
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(dir, config.FileName))
	require.NoError(t, err, "config should exist")
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runExpenses(t, "init", dir)
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.Storage.Path)
	assert.Equal(t, "@expenses", cfg.Storage.Key)
}

func TestInit_SQLite(t *testing.T) {
	dir := t.TempDir()
	_, err := runExpenses(t, "init", dir, "--backend", "sqlite")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join("data", "expenses.db"), cfg.Storage.Path)
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runExpenses(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	for _, pattern := range []string{"data/", ".env"} {
		assert.Contains(t, string(data), pattern, ".gitignore should contain %s", pattern)
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runExpenses(t, "init", dir)
	require.NoError(t, err)

	_, err = runExpenses(t, "init", dir)
	require.Error(t, err, "second init without --force should fail")

	_, err = runExpenses(t, "init", dir, "--force", "--backend", "sqlite")
	require.NoError(t, err)
}

func TestInit_UnknownBackend(t *testing.T) {
	_, err := runExpenses(t, "init", t.TempDir(), "--backend", "s3")
	require.Error(t, err)
}

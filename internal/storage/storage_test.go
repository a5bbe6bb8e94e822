package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFile(filepath.Join(dir, "data"))
	require.NoError(t, err)

	db, err := NewSQLite(filepath.Join(dir, "db", "expenses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]Backend{
		BackendMemory: NewMemory(),
		BackendFile:   file,
		BackendSQLite: db,
	}
}

func TestBackend_GetMissing(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		v, ok, err := b.GetItem(ctx, "@expenses")
		require.NoError(t, err, name)
		assert.False(t, ok, "%s: missing key should report absent", name)
		assert.Empty(t, v, name)
	}
}

func TestBackend_SetGet(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		require.NoError(t, b.SetItem(ctx, "@expenses", `[{"id":"1"}]`), name)

		v, ok, err := b.GetItem(ctx, "@expenses")
		require.NoError(t, err, name)
		assert.True(t, ok, name)
		assert.Equal(t, `[{"id":"1"}]`, v, name)
	}
}

func TestBackend_Overwrite(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		require.NoError(t, b.SetItem(ctx, "@expenses", "first"), name)
		require.NoError(t, b.SetItem(ctx, "@expenses", "second"), name)

		v, ok, err := b.GetItem(ctx, "@expenses")
		require.NoError(t, err, name)
		assert.True(t, ok, name)
		assert.Equal(t, "second", v, "%s: last write wins", name)
	}
}

func TestBackend_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		require.NoError(t, b.SetItem(ctx, "a", "1"), name)
		require.NoError(t, b.SetItem(ctx, "b", "2"), name)
		require.NoError(t, b.SetItem(ctx, "@expenses", "3"), name)
		require.NoError(t, b.SetItem(ctx, "expenses", "4"), name)

		v, _, err := b.GetItem(ctx, "a")
		require.NoError(t, err, name)
		assert.Equal(t, "1", v, name)

		v, _, err = b.GetItem(ctx, "@expenses")
		require.NoError(t, err, name)
		assert.Equal(t, "3", v, "%s: keys differing only by punctuation stay apart", name)
	}
}

func TestFile_WritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.SetItem(context.Background(), "@expenses", "[]"))

	data, err := os.ReadFile(filepath.Join(dir, "%40expenses.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFile_RequiresDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestFile_CanceledContext(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.SetItem(ctx, "k", "v"), context.Canceled)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"@expenses", "%40expenses.json"},
		{"expenses", "expenses.json"},
		{"my-key_2", "my-key_2.json"},
		{"../../etc/passwd", "%2E%2E%2F%2E%2E%2Fetc%2Fpasswd.json"},
		{"100%", "100%25.json"},
		{"", ".json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.key), "key %q", tt.key)
	}
}

func TestFileName_Distinct(t *testing.T) {
	keys := []string{"@expenses", "expenses", "#expenses", "%40expenses", "a b", "a_b", "a-b", ""}
	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		name := FileName(k)
		prev, dup := seen[name]
		assert.False(t, dup, "%q and %q both map to %s", prev, k, name)
		seen[name] = k
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "expenses.db")

	db, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.SetItem(ctx, "@expenses", "[1,2,3]"))
	require.NoError(t, db.Close())

	// Re-opening re-runs migrations, which must be a no-op.
	db, err = NewSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := db.GetItem(ctx, "@expenses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1,2,3]", v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	b, err := Open(Options{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	b, err = Open(Options{Backend: "FILE", Path: filepath.Join(dir, "data")})
	require.NoError(t, err)
	assert.IsType(t, &File{}, b)

	b, err = Open(Options{Backend: "sqlite", Path: filepath.Join(dir, "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, b)
	require.NoError(t, b.Close())

	_, err = Open(Options{Backend: "s3"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

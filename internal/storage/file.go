package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File stores each key as a file under a data directory.
type File struct {
	dir string
}

// NewFile creates a file backend rooted at dir, creating the directory if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file backend: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading item %q: %w", key, err)
	}
	return string(data), true, nil
}

// SetItem writes to a temp file and renames it over the old value, so a
// failed write never leaves a truncated item behind.
func (f *File) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ".item-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %q: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing item %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing item %q: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		return fmt.Errorf("replacing item %q: %w", key, err)
	}
	return nil
}

func (f *File) Close() error { return nil }

func (f *File) path(key string) string {
	return filepath.Join(f.dir, FileName(key))
}

// FileName maps a storage key to a file name. Letters, digits, '-' and '_'
// are kept; every other byte becomes %XX, so distinct keys never share a file.
// "@expenses" -> "%40expenses.json"
func FileName(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String() + ".json"
}

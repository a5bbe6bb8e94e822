// Package storage provides the key-value persistence backends the expense
// store writes through. Values are opaque text.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend is a string key-value store.
type Backend interface {
	// GetItem returns the value for key. ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	// SetItem overwrites the value for key.
	SetItem(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Path is the data directory for the file backend and the database file
	// for the sqlite backend. Ignored by the memory backend.
	Path string
}

// Open creates the backend named in opts.
func Open(opts Options) (Backend, error) {
	switch strings.ToLower(opts.Backend) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(opts.Path)
	case BackendSQLite:
		return NewSQLite(opts.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

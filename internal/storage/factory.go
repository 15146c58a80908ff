// Package storage provides the key-value stores that persist flag values.
package storage

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/debugmenu/internal/colors"
	"github.com/cristianoliveira/debugmenu/internal/config"
	"github.com/cristianoliveira/debugmenu/internal/storage/sqlite"
)

const (
	// BackendSQLite selects the SQLite-backed store.
	BackendSQLite = "sqlite"
	// BackendMemory selects the in-memory store.
	BackendMemory = "memory"
)

var _ Store = (*sqlite.Store)(nil)
var _ Store = (*MemoryStore)(nil)

// NewFromConfig creates a store based on configuration.
func NewFromConfig() (Store, error) {
	config.Load()
	return NewForBackend(config.Get("storage_backend", BackendSQLite), config.Get("store_path", ""))
}

// NewForBackend creates a store for the provided backend name. A SQLite store
// that cannot be opened falls back to memory with a warning.
func NewForBackend(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		s, err := sqlite.New(path)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to memory: %v", err))
			return NewMemoryStore(), nil
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

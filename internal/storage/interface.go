package storage

import "errors"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage closed")

// Store persists integer values under string keys.
type Store interface {
	// GetInt returns the value stored under key, or def when the key is absent.
	GetInt(key string, def int) (int, error)
	// SetInt stores value under key.
	SetInt(key string, value int) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns every stored key starting with prefix, sorted.
	Keys(prefix string) ([]string, error)
	// Clear removes every key.
	Clear() error
	// Close releases the underlying resources.
	Close() error
}

package store

import (
	"fmt"
	"path/filepath"
)

// Backend represents the index store backend type.
type Backend string

const (
	// BackendJSON persists the index as a single JSON file (default).
	BackendJSON Backend = "json"

	// BackendSQLite persists the index in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// New creates a Store for the given location and backend name.
// An empty backend selects by file extension: ".db" and ".sqlite" mean
// SQLite, anything else means JSON.
func New(location string, backend string) (Store, error) {
	switch Backend(backend) {
	case BackendJSON:
		return NewJSONStore(location), nil
	case BackendSQLite:
		return NewSQLiteStore(location), nil
	case "":
		return New(location, string(DetectBackend(location)))
	default:
		return nil, fmt.Errorf("unknown index backend: %s (valid options: json, sqlite)", backend)
	}
}

// DetectBackend picks a backend from the location's file extension.
func DetectBackend(location string) Backend {
	switch filepath.Ext(location) {
	case ".db", ".sqlite":
		return BackendSQLite
	default:
		return BackendJSON
	}
}

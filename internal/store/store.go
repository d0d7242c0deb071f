// Package store persists the name index and loads it back.
//
// Two backends exist: a JSON file (default) and SQLite. Both guarantee
// an exact round-trip: loading a saved index yields an index equal to
// the one saved. A build fully replaces whatever was persisted before.
package store

import (
	"github.com/defrec/defrec/internal/index"
)

// Store persists and loads a name index at a fixed location.
type Store interface {
	// Save atomically replaces the persisted index.
	// A failed save never reports success on a partial write.
	Save(idx *index.Index) error

	// Load reads the persisted index. A missing location yields an
	// error with code ErrCodeIndexNotFound; undecodable data yields
	// ErrCodeIndexCorrupt.
	Load() (*index.Index, error)

	// Location returns the storage location for display.
	Location() string
}

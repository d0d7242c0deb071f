package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/defrec/defrec/internal/errors"
	"github.com/defrec/defrec/internal/index"
)

// JSONStore persists the index as a single JSON file.
// Saves are atomic (temp file + rename) and serialized across
// processes with a sibling lock file, so a reader never observes a
// half-written index and two concurrent builds cannot interleave.
type JSONStore struct {
	path string
	lock *flock.Flock
}

// NewJSONStore creates a JSON store at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Save atomically replaces the persisted index.
func (s *JSONStore) Save(idx *index.Index) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.IOError(fmt.Sprintf("cannot create index directory for %s", s.path), err)
	}

	if err := s.lock.Lock(); err != nil {
		return errors.New(errors.ErrCodeLockHeld, fmt.Sprintf("cannot lock index at %s", s.path), err)
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return errors.IOError("cannot encode index", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.IOError(fmt.Sprintf("cannot write index to %s", tmp), err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.IOError(fmt.Sprintf("cannot replace index at %s", s.path), err)
	}
	return nil
}

// Load reads the persisted index.
func (s *JSONStore) Load() (*index.Index, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, errors.NotFoundError(s.path)
	}
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("cannot read index at %s", s.path), err)
	}

	var idx index.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.CorruptError(s.path, err)
	}
	return &idx, nil
}

// Location returns the index file path.
func (s *JSONStore) Location() string {
	return s.path
}

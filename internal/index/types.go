// Package index defines the persisted name index and the corpus
// builder that produces it from a file enumeration.
package index

// Entry pairs a file path with the candidate names extracted from it,
// in file-appearance order. Names may be empty for files that were
// readable but contained no definitions.
type Entry struct {
	Path  string   `json:"path"`
	Names []string `json:"names"`
}

// Index is an ordered mapping from file path to extracted names.
// Paths are unique; entry order is scan discovery order, which matters
// only for reproducible output, never for correctness. An Index is
// immutable once built or loaded.
type Index struct {
	Entries []Entry `json:"entries"`
}

// New returns an empty Index.
func New() *Index {
	return &Index{}
}

// Add appends an entry. The caller is responsible for path uniqueness;
// the builder enforces it during a scan.
func (idx *Index) Add(path string, names []string) {
	idx.Entries = append(idx.Entries, Entry{Path: path, Names: names})
}

// Len returns the number of indexed files.
func (idx *Index) Len() int {
	return len(idx.Entries)
}

// NameCount returns the total number of indexed names across all files.
func (idx *Index) NameCount() int {
	n := 0
	for _, e := range idx.Entries {
		n += len(e.Names)
	}
	return n
}

// Lookup returns the names recorded for path and whether the path is
// indexed at all. The second return distinguishes "indexed with no
// names" from "not indexed".
func (idx *Index) Lookup(path string) ([]string, bool) {
	for _, e := range idx.Entries {
		if e.Path == path {
			return e.Names, true
		}
	}
	return nil, false
}

// Equal reports whether two indexes hold the same entries in the same
// order.
func (idx *Index) Equal(other *Index) bool {
	if other == nil || len(idx.Entries) != len(other.Entries) {
		return false
	}
	for i, e := range idx.Entries {
		o := other.Entries[i]
		if e.Path != o.Path || len(e.Names) != len(o.Names) {
			return false
		}
		for j, n := range e.Names {
			if n != o.Names[j] {
				return false
			}
		}
	}
	return true
}

package match

import (
	"sort"
	"strings"

	"github.com/defrec/defrec/internal/index"
)

// Match is one scored hit: a name in a file with its similarity to the
// query. Matches are derived per query and never persisted.
type Match struct {
	Path  string  `json:"path"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Options controls which index names qualify for scoring.
type Options struct {
	// PathFilter keeps only files whose path contains it as a
	// substring. Empty matches everything.
	PathFilter string

	// MinLength excludes names shorter than this many bytes before any
	// scoring happens.
	MinLength int

	// Threshold is the exclusive minimum score: a name scoring exactly
	// at the threshold is not reported.
	Threshold float64
}

// Engine scans a loaded index and ranks names by similarity to a
// query.
type Engine struct {
	scorer *Scorer
}

// NewEngine creates an Engine using the given scorer.
func NewEngine(scorer *Scorer) *Engine {
	return &Engine{scorer: scorer}
}

// Query scores every qualifying name in idx against input and returns
// matches with score strictly above the threshold, ordered descending
// by score. Ties keep discovery order.
//
// A (path, name) pair that occurs twice in the index collapses to one
// match carrying the last score seen, at its first-seen position. The
// scores are identical in practice, so this only mirrors the keyed-map
// behavior the persisted format has always implied.
func (e *Engine) Query(idx *index.Index, input string, opts Options) []Match {
	normalized := e.scorer.Normalize(input)

	var matches []Match
	position := make(map[string]int)

	for _, entry := range idx.Entries {
		if opts.PathFilter != "" && !strings.Contains(entry.Path, opts.PathFilter) {
			continue
		}
		for _, name := range entry.Names {
			if len(name) < opts.MinLength {
				continue
			}
			score := e.scorer.Score(e.scorer.Normalize(name), normalized)
			if score <= opts.Threshold {
				continue
			}

			key := entry.Path + "\x00" + name
			if at, seen := position[key]; seen {
				matches[at].Score = score
				continue
			}
			position[key] = len(matches)
			matches = append(matches, Match{Path: entry.Path, Name: name, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Package match scores a user's guess against indexed names and ranks
// the results.
package match

import (
	"math"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DefaultJunk is the default set of characters stripped during
	// normalization.
	DefaultJunk = " _"

	// DefaultScoreCacheSize bounds the per-pair score cache. The same
	// function name recurs across many files calling into the same
	// library, so repeated pairs are the common case.
	DefaultScoreCacheSize = 4096
)

// Scorer normalizes strings and computes a similarity ratio between
// them.
//
// The ratio is the character-level sequence-matching ratio (difflib),
// rounded to one decimal place. The rounding precision is part of the
// contract: query thresholds compare against these rounded values, so
// it must stay consistent.
type Scorer struct {
	junk  string
	cache *lru.Cache[string, float64]
}

// NewScorer creates a Scorer with the given junk character set and
// score cache size. Zero or negative size uses the default; an empty
// junk set uses the default (space and underscore).
func NewScorer(junk string, cacheSize int) *Scorer {
	if junk == "" {
		junk = DefaultJunk
	}
	if cacheSize <= 0 {
		cacheSize = DefaultScoreCacheSize
	}
	cache, _ := lru.New[string, float64](cacheSize)
	return &Scorer{junk: junk, cache: cache}
}

// NewDefaultScorer creates a Scorer with default settings.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultJunk, DefaultScoreCacheSize)
}

// Normalize removes every occurrence of the junk characters and
// lowercases the result.
func (s *Scorer) Normalize(in string) string {
	out := in
	for _, c := range s.junk {
		out = strings.ReplaceAll(out, string(c), "")
	}
	return strings.ToLower(out)
}

// Score returns the similarity ratio between a and b in [0,1], rounded
// to one decimal place. It is commutative, and Score(x, x) is 1.0 for
// any x (two empty strings included). Results are memoized per
// unordered pair.
func (s *Scorer) Score(a, b string) float64 {
	// Key on the ordered pair so both argument orders hit one entry.
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	key := lo + "\x00" + hi

	if ratio, ok := s.cache.Get(key); ok {
		return ratio
	}

	m := difflib.NewMatcher(strings.Split(lo, ""), strings.Split(hi, ""))
	ratio := math.Round(m.Ratio()*10) / 10

	s.cache.Add(key, ratio)
	return ratio
}

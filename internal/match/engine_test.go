package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defrec/defrec/internal/index"
)

func testIndex() *index.Index {
	idx := index.New()
	idx.Add("/a/x.py", []string{"handle_request", "x"})
	idx.Add("/b/x.py", []string{"handle_request"})
	idx.Add("/a/y.py", []string{"parse_args", "slugify"})
	return idx
}

func TestQueryExactMatchRankedFirst(t *testing.T) {
	e := NewEngine(NewDefaultScorer())

	got := e.Query(testIndex(), "handle_request", Options{Threshold: 0.99})
	require.NotEmpty(t, got)
	assert.Equal(t, "handle_request", got[0].Name)
	assert.Equal(t, 1.0, got[0].Score)
}

func TestQueryThresholdIsExclusive(t *testing.T) {
	e := NewEngine(NewDefaultScorer())
	idx := index.New()
	idx.Add("/a.py", []string{"exact"})

	// Exact match scores 1.0; a threshold of 1.0 excludes it.
	got := e.Query(idx, "exact", Options{Threshold: 1.0})
	assert.Empty(t, got)

	got = e.Query(idx, "exact", Options{Threshold: 0.99})
	assert.Len(t, got, 1)
}

func TestQueryThresholdAboveMaxReturnsEmpty(t *testing.T) {
	e := NewEngine(NewDefaultScorer())

	got := e.Query(testIndex(), "handle_request", Options{Threshold: 1.01})
	assert.Empty(t, got)
}

func TestQueryHonorsPathFilter(t *testing.T) {
	e := NewEngine(NewDefaultScorer())

	got := e.Query(testIndex(), "handle_request", Options{PathFilter: "/a/", Threshold: 0.99})
	require.Len(t, got, 1)
	assert.Equal(t, "/a/x.py", got[0].Path)
}

func TestQueryHonorsMinLength(t *testing.T) {
	e := NewEngine(NewDefaultScorer())

	// "x" scores 1.0 against the input but is shorter than MinLength.
	got := e.Query(testIndex(), "x", Options{MinLength: 2, Threshold: 0.5})
	for _, m := range got {
		assert.NotEqual(t, "x", m.Name)
	}

	got = e.Query(testIndex(), "x", Options{MinLength: 0, Threshold: 0.5})
	found := false
	for _, m := range got {
		if m.Name == "x" {
			found = true
			assert.Equal(t, 1.0, m.Score)
		}
	}
	assert.True(t, found)
}

func TestQueryNormalizesInputAndNames(t *testing.T) {
	e := NewEngine(NewDefaultScorer())
	idx := index.New()
	idx.Add("/a.py", []string{"My_Func Name"})

	got := e.Query(idx, "myfuncname", Options{Threshold: 0.99})
	require.Len(t, got, 1)
	assert.Equal(t, "My_Func Name", got[0].Name, "match reports the raw indexed name")
	assert.Equal(t, 1.0, got[0].Score)
}

func TestQueryDescendingOrder(t *testing.T) {
	e := NewEngine(NewDefaultScorer())
	idx := index.New()
	idx.Add("/a.py", []string{"parse", "parser", "parsnip", "unrelated"})

	got := e.Query(idx, "parse", Options{Threshold: 0.1})
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	assert.Equal(t, "parse", got[0].Name)
}

func TestQueryTiesKeepDiscoveryOrder(t *testing.T) {
	e := NewEngine(NewDefaultScorer())
	idx := index.New()
	idx.Add("/first.py", []string{"target"})
	idx.Add("/second.py", []string{"target"})

	got := e.Query(idx, "target", Options{Threshold: 0.5})
	require.Len(t, got, 2)
	assert.Equal(t, "/first.py", got[0].Path)
	assert.Equal(t, "/second.py", got[1].Path)
}

func TestQueryCollapsesDuplicateFileNamePairs(t *testing.T) {
	e := NewEngine(NewDefaultScorer())
	idx := index.New()
	// The same name emitted twice from one file keys to one match.
	idx.Add("/dup.py", []string{"repeated", "repeated"})

	got := e.Query(idx, "repeated", Options{Threshold: 0.5})
	assert.Len(t, got, 1)
}

func TestQueryEmptyIndex(t *testing.T) {
	e := NewEngine(NewDefaultScorer())
	got := e.Query(index.New(), "anything", Options{})
	assert.Empty(t, got)
}

func TestQueryFileWithNoNames(t *testing.T) {
	e := NewEngine(NewDefaultScorer())
	idx := index.New()
	idx.Add("/empty.py", nil)

	got := e.Query(idx, "anything", Options{Threshold: 0.0})
	assert.Empty(t, got)
}

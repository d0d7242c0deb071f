package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defrec/defrec/internal/enumerate"
	"github.com/defrec/defrec/internal/extract"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuildPreservesEnumerationOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "b.py")
	writeFile(t, a, "def one():\n")
	writeFile(t, b, "def two():\ndef three():\n")

	builder := NewBuilder(extract.New())
	idx, err := builder.Build(context.Background(), []string{b, a})
	require.NoError(t, err)

	require.Equal(t, 2, idx.Len())
	assert.Equal(t, b, idx.Entries[0].Path)
	assert.Equal(t, []string{"two", "three"}, idx.Entries[0].Names)
	assert.Equal(t, a, idx.Entries[1].Path)
	assert.Equal(t, []string{"one"}, idx.Entries[1].Names)
}

func TestBuildSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.py")
	writeFile(t, good, "def fine():\n")
	missing := filepath.Join(dir, "gone.py")

	builder := NewBuilder(extract.New())
	idx, err := builder.Build(context.Background(), []string{good, missing})
	require.NoError(t, err)

	require.Equal(t, 1, idx.Len())
	_, ok := idx.Lookup(missing)
	assert.False(t, ok, "skipped file must not be inserted, even with empty names")
}

func TestBuildInsertsEmptyNameList(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.py")
	writeFile(t, plain, "x = 1\n")

	builder := NewBuilder(extract.New())
	idx, err := builder.Build(context.Background(), []string{plain})
	require.NoError(t, err)

	names, ok := idx.Lookup(plain)
	assert.True(t, ok, "readable file with zero names is still indexed")
	assert.Empty(t, names)
}

func TestBuildDeduplicatesPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	writeFile(t, a, "def once():\n")

	builder := NewBuilder(extract.New())
	idx, err := builder.Build(context.Background(), []string{a, a, a})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}

func TestBuildEmptyEnumeration(t *testing.T) {
	builder := NewBuilder(extract.New())
	idx, err := builder.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 0, idx.NameCount())
}

func TestBuildCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	builder := NewBuilder(extract.New())
	_, err := builder.Build(ctx, []string{"whatever.py"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "m.py"), "def main():\n")
	writeFile(t, filepath.Join(dir, "sub", "h.py"), "def helper(a):\n")
	writeFile(t, filepath.Join(dir, "readme.txt"), "def not_indexed():\n")

	builder := NewBuilder(extract.New())
	idx, err := builder.BuildRoot(context.Background(), dir, enumerate.NewWalk(".py", nil))
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 2, idx.NameCount())
}

func TestIndexEqual(t *testing.T) {
	a := New()
	a.Add("/x.py", []string{"f"})
	b := New()
	b.Add("/x.py", []string{"f"})
	c := New()
	c.Add("/x.py", []string{"g"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.False(t, a.Equal(New()))
}

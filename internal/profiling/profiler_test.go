package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCPUProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")

	var s Session
	require.NoError(t, s.StartCPU(path))

	// Burn a little CPU so the profile has samples.
	sum := 0
	for i := 0; i < 1_000_000; i++ {
		sum += i
	}
	_ = sum

	require.NoError(t, s.Stop())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSessionHeapSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.prof")

	var s Session
	s.DeferHeap(path)
	require.NoError(t, s.Stop())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSessionStopWithoutStartIsNoop(t *testing.T) {
	var s Session
	assert.NoError(t, s.Stop())
}

func TestSessionCPUProfileBadPath(t *testing.T) {
	var s Session
	err := s.StartCPU(filepath.Join(t.TempDir(), "missing", "cpu.prof"))
	require.Error(t, err)
	assert.NoError(t, s.Stop())
}

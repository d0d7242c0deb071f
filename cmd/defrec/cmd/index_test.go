package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree lays out a small Python project for end-to-end runs.
func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"cli.py":        "def parse_args(argv):\n    pass\n\ndef main():\n    pass\n",
		"util/fmt.py":   "def format_row(row):\n    pass\n",
		"util/empty.py": "# nothing defined here\n",
		"README.md":     "def not_indexed(): only .py files are scanned\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// isolateConfig keeps user config and env overrides out of a test.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"DEFREC_INDEX_PATH", "DEFREC_INDEX_BACKEND", "DEFREC_SCAN_EXTENSION",
		"DEFREC_SCAN_STRATEGY", "DEFREC_MATCH_THRESHOLD", "DEFREC_MATCH_MIN_LENGTH",
	} {
		t.Setenv(key, "")
	}
}

func TestIndexCmd_BuildsAndReportsSummary(t *testing.T) {
	isolateConfig(t)
	root := writeTree(t)
	indexPath := filepath.Join(t.TempDir(), "index.json")

	cmd := newIndexCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{root, "--index", indexPath, "--walk"})

	require.NoError(t, cmd.Execute())

	assert.FileExists(t, indexPath)
	assert.Contains(t, buf.String(), "3 files", "three .py files should be indexed")
	assert.Contains(t, buf.String(), "3 definitions")
}

func TestIndexCmd_SQLiteBackendFromExtension(t *testing.T) {
	isolateConfig(t)
	root := writeTree(t)
	indexPath := filepath.Join(t.TempDir(), "index.db")

	cmd := newIndexCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{root, "--index", indexPath, "--walk"})

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, indexPath)
}

func TestRecallCmd_FindsNearMatches(t *testing.T) {
	isolateConfig(t)
	root := writeTree(t)
	indexPath := filepath.Join(t.TempDir(), "index.json")

	idx := newIndexCmd()
	idx.SetOut(&bytes.Buffer{})
	idx.SetArgs([]string{root, "--index", indexPath, "--walk"})
	require.NoError(t, idx.Execute())

	rec := newRecallCmd()
	buf := &bytes.Buffer{}
	rec.SetOut(buf)
	rec.SetArgs([]string{"parseargs", "--index", indexPath})

	require.NoError(t, rec.Execute())
	assert.Contains(t, buf.String(), "parse_args")
	assert.Contains(t, buf.String(), "cli.py")
	assert.NotContains(t, buf.String(), "format_row")
}

func TestRecallCmd_JSONFormat(t *testing.T) {
	isolateConfig(t)
	root := writeTree(t)
	indexPath := filepath.Join(t.TempDir(), "index.json")

	idx := newIndexCmd()
	idx.SetOut(&bytes.Buffer{})
	idx.SetArgs([]string{root, "--index", indexPath, "--walk"})
	require.NoError(t, idx.Execute())

	rec := newRecallCmd()
	buf := &bytes.Buffer{}
	rec.SetOut(buf)
	rec.SetArgs([]string{"parse_args", "--index", indexPath, "--format", "json"})

	require.NoError(t, rec.Execute())

	var results []recallResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "parse_args", results[0].Guess)
	require.NotEmpty(t, results[0].Matches)
	assert.Equal(t, "parse_args", results[0].Matches[0].Name)
	assert.Equal(t, 1.0, results[0].Matches[0].Score)
}

func TestRecallCmd_PathFilter(t *testing.T) {
	isolateConfig(t)
	root := writeTree(t)
	indexPath := filepath.Join(t.TempDir(), "index.json")

	idx := newIndexCmd()
	idx.SetOut(&bytes.Buffer{})
	idx.SetArgs([]string{root, "--index", indexPath, "--walk"})
	require.NoError(t, idx.Execute())

	rec := newRecallCmd()
	buf := &bytes.Buffer{}
	rec.SetOut(buf)
	rec.SetArgs([]string{"format_row", "--index", indexPath, "--path", "util"})

	require.NoError(t, rec.Execute())
	assert.Contains(t, buf.String(), "format_row")
}

func TestRecallCmd_MissingIndexIsFatal(t *testing.T) {
	isolateConfig(t)
	indexPath := filepath.Join(t.TempDir(), "absent.json")

	rec := newRecallCmd()
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	rec.SetOut(outBuf)
	rec.SetErr(errBuf)
	rec.SetArgs([]string{"anything", "--index", indexPath})

	err := rec.Execute()
	require.Error(t, err)
	assert.Contains(t, errBuf.String(), "defrec index", "error should tell the user to build the index first")
}

func TestRecallCmd_RejectsUnknownFormat(t *testing.T) {
	isolateConfig(t)

	rec := newRecallCmd()
	rec.SetOut(&bytes.Buffer{})
	rec.SetErr(&bytes.Buffer{})
	rec.SetArgs([]string{"anything", "--format", "xml"})

	err := rec.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

package enumerate

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	deferrors "github.com/defrec/defrec/internal/errors"
)

// locateCommands are the binaries probed for the fast path, in order
// of preference.
var locateCommands = []string{"plocate", "locate"}

// Locate enumerates candidate files via the system locate database.
// This avoids a full filesystem walk when the database is fresh; stale
// entries are tolerated because the corpus builder skips unreadable
// files anyway.
type Locate struct {
	ext     string
	command string
}

// NewLocate creates a Locate enumerator for files with the given
// extension (e.g. ".py").
func NewLocate(ext string) *Locate {
	return &Locate{ext: ext}
}

// Available reports whether a locate binary is on PATH.
func (l *Locate) Available() bool {
	return l.resolveCommand() != ""
}

// resolveCommand finds and memoizes the locate binary.
func (l *Locate) resolveCommand() string {
	if l.command != "" {
		return l.command
	}
	for _, name := range locateCommands {
		if path, err := exec.LookPath(name); err == nil {
			l.command = path
			return path
		}
	}
	return ""
}

// Enumerate queries the locate database for paths under root with the
// configured extension. Locate exits 1 when nothing matches; that is an
// empty result, not an error.
func (l *Locate) Enumerate(ctx context.Context, root string) ([]string, error) {
	command := l.resolveCommand()
	if command == "" {
		return nil, deferrors.New(deferrors.ErrCodeScanFailed, "no locate binary on PATH", nil)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, deferrors.Wrap(deferrors.ErrCodeScanFailed, err)
	}

	out, err := exec.CommandContext(ctx, command, absRoot).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(out) == 0 {
			return nil, nil
		}
		return nil, deferrors.Wrap(deferrors.ErrCodeScanFailed, err)
	}

	return l.filter(absRoot, string(out)), nil
}

// filter keeps only lines that are files under root with the configured
// extension. The locate database matches the root as a substring, so
// prefix filtering here keeps the result bounded to the root.
func (l *Locate) filter(absRoot, out string) []string {
	prefix := absRoot + string(filepath.Separator)

	var paths []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, prefix) && line != absRoot {
			continue
		}
		if !strings.HasSuffix(line, l.ext) {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}

// Name identifies the strategy for logging.
func (l *Locate) Name() string { return "locate" }

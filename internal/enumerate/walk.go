package enumerate

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	deferrors "github.com/defrec/defrec/internal/errors"
)

// defaultExcludeDirs are directory names never descended into.
var defaultExcludeDirs = []string{
	".git",
	"node_modules",
	"vendor",
	"__pycache__",
	".venv",
	"venv",
	"dist",
	"build",
}

// Walk enumerates candidate files with a recursive directory walk
// bounded to the root. It is the fallback when no locate database is
// available and the only strategy that sees files created since the
// last database update.
type Walk struct {
	ext         string
	excludeDirs map[string]struct{}
}

// NewWalk creates a Walk enumerator for files with the given extension.
// excludeDirs supplements the default exclusions (VCS and dependency
// directories); nil keeps just the defaults.
func NewWalk(ext string, excludeDirs []string) *Walk {
	excluded := make(map[string]struct{}, len(defaultExcludeDirs)+len(excludeDirs))
	for _, d := range defaultExcludeDirs {
		excluded[d] = struct{}{}
	}
	for _, d := range excludeDirs {
		excluded[d] = struct{}{}
	}
	return &Walk{ext: ext, excludeDirs: excluded}
}

// Enumerate walks root and returns matching file paths in walk order.
// Unreadable entries are skipped, never fatal.
func (w *Walk) Enumerate(ctx context.Context, root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, deferrors.Wrap(deferrors.ErrCodeScanFailed, err)
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil // Skip entries we can't access
		}

		if d.IsDir() {
			if path != absRoot {
				if _, skip := w.excludeDirs[d.Name()]; skip {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if strings.HasSuffix(path, w.ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, deferrors.Wrap(deferrors.ErrCodeScanFailed, err)
	}

	return paths, nil
}

// Name identifies the strategy for logging.
func (w *Walk) Name() string { return "walk" }

// Package enumerate discovers candidate source files under a root.
//
// Two strategies exist: Locate, which queries the system file-location
// database, and Walk, which recursively walks the filesystem. Auto
// prefers Locate when available and falls back to Walk, so callers
// never have to care which one ran.
package enumerate

import (
	"context"
	"log/slog"
)

// Enumerator yields candidate file paths under a root directory.
// Paths are absolute; order is the strategy's discovery order.
type Enumerator interface {
	// Enumerate returns candidate file paths under root.
	Enumerate(ctx context.Context, root string) ([]string, error)

	// Name identifies the strategy for logging.
	Name() string
}

// Auto selects the fastest available strategy at runtime: the locate
// database when present, otherwise a recursive walk.
type Auto struct {
	locate *Locate
	walk   *Walk
}

// NewAuto creates an Auto enumerator for the given source extension.
func NewAuto(ext string, excludeDirs []string) *Auto {
	return &Auto{
		locate: NewLocate(ext),
		walk:   NewWalk(ext, excludeDirs),
	}
}

// Enumerate tries the locate strategy first and falls back to a walk
// when locate is unavailable, fails, or returns nothing. An empty
// locate result usually means a stale database rather than a genuinely
// empty tree, so the walk gets the final word.
func (a *Auto) Enumerate(ctx context.Context, root string) ([]string, error) {
	if a.locate.Available() {
		paths, err := a.locate.Enumerate(ctx, root)
		if err == nil && len(paths) > 0 {
			return paths, nil
		}
		if err != nil {
			slog.Debug("locate_failed_falling_back",
				slog.String("root", root),
				slog.String("error", err.Error()))
		}
	}
	return a.walk.Enumerate(ctx, root)
}

// Name identifies the strategy for logging.
func (a *Auto) Name() string { return "auto" }

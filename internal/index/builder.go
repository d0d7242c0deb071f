package index

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/defrec/defrec/internal/enumerate"
	"github.com/defrec/defrec/internal/extract"
)

// Builder assembles an Index by running the extractor over an
// enumeration of candidate files.
type Builder struct {
	extractor *extract.Extractor
}

// NewBuilder creates a Builder using the given extractor.
func NewBuilder(extractor *extract.Extractor) *Builder {
	return &Builder{extractor: extractor}
}

// Build extracts names from every path in enumeration order and
// returns the resulting Index.
//
// A file the extractor cannot read is skipped entirely: it does not
// appear in the Index, which is distinct from appearing with an empty
// name list. A single unreadable file never aborts the build. Paths
// are normalized; a path yielded more than once keeps its first
// occurrence.
func (b *Builder) Build(ctx context.Context, paths []string) (*Index, error) {
	idx := New()
	seen := make(map[string]struct{}, len(paths))
	skipped := 0

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		path = filepath.Clean(path)
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}

		names, err := b.extractor.ExtractFile(path)
		if err != nil {
			skipped++
			slog.Debug("file_skipped",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		idx.Add(path, names)
	}

	slog.Info("index_built",
		slog.Int("files", idx.Len()),
		slog.Int("names", idx.NameCount()),
		slog.Int("skipped", skipped))
	return idx, nil
}

// BuildRoot enumerates candidates under root with the given strategy
// and builds an Index from them. An empty enumeration yields a valid
// empty Index.
func (b *Builder) BuildRoot(ctx context.Context, root string, enum enumerate.Enumerator) (*Index, error) {
	paths, err := enum.Enumerate(ctx, root)
	if err != nil {
		return nil, err
	}
	slog.Debug("candidates_enumerated",
		slog.String("root", root),
		slog.String("strategy", enum.Name()),
		slog.Int("count", len(paths)))
	return b.Build(ctx, paths)
}

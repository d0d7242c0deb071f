package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/defrec/defrec/internal/errors"
)

// Options configures a Watcher.
type Options struct {
	// Extension limits events to files with this suffix (e.g. ".py").
	Extension string

	// ExcludeDirs are directory names skipped during recursive setup.
	ExcludeDirs []string

	// Debounce is the coalescing window for change batches.
	Debounce time.Duration
}

// Watcher observes a directory tree and emits debounced batches of
// changed file paths.
type Watcher struct {
	root      string
	opts      Options
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	exclude   map[string]struct{}
}

// New creates a watcher for root. Start must be called before batches
// flow.
func New(root string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.IOError("create file watcher", err)
	}

	exclude := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		exclude[d] = struct{}{}
	}

	return &Watcher{
		root:      root,
		opts:      opts,
		fsw:       fsw,
		debouncer: NewDebouncer(opts.Debounce),
		exclude:   exclude,
	}, nil
}

// Start registers the directory tree and launches the event loop. The
// loop runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addRecursive(w.root); err != nil {
		w.fsw.Close()
		return err
	}

	go w.loop(ctx)
	return nil
}

// Batches returns the channel of debounced change batches.
func (w *Watcher) Batches() <-chan []string {
	return w.debouncer.Output()
}

// Stop shuts down the watcher and closes the batch channel.
func (w *Watcher) Stop() error {
	err := w.fsw.Close()
	w.debouncer.Stop()
	return err
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("skipping unreadable path during watch setup",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if _, excluded := w.exclude[d.Name()]; excluded && path != root {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			slog.Warn("failed to watch directory",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return nil
	})
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// New directories need registering so nested changes surface.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if _, excluded := w.exclude[filepath.Base(event.Name)]; !excluded {
				if err := w.addRecursive(event.Name); err != nil {
					slog.Warn("failed to watch new directory",
						slog.String("path", event.Name),
						slog.String("error", err.Error()))
				}
			}
			return
		}
	}

	if w.opts.Extension != "" && !strings.HasSuffix(event.Name, w.opts.Extension) {
		return
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	w.debouncer.Add(event.Name)
}

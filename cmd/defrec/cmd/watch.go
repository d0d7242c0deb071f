package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/defrec/defrec/internal/config"
	"github.com/defrec/defrec/internal/output"
	"github.com/defrec/defrec/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		indexPath string
		ext       string
	)

	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Rebuild the index whenever source files change",
		Long: `Watch root for changes to matching source files and rebuild the
index after each debounced batch of events. Every rebuild replaces the
persisted index wholesale.

Runs until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("failed to resolve root: %w", err)
			}

			cfg, err := config.Load(configDir(cmd))
			if err != nil {
				return err
			}
			if indexPath != "" {
				cfg.Index.Path = indexPath
			}
			if ext != "" {
				cfg.Scan.Extension = ext
			}

			return runWatch(cmd, cfg, root)
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "Index file location (default: from config)")
	cmd.Flags().StringVar(&ext, "ext", "", "File extension to watch (default: .py)")

	return cmd
}

func runWatch(cmd *cobra.Command, cfg *config.Config, root string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := output.New(cmd.OutOrStdout())

	// Initial build so the index exists before the first change.
	if err := runIndex(ctx, cmd, cfg, root); err != nil {
		return err
	}

	w, err := watch.New(root, watch.Options{
		Extension:   cfg.Scan.Extension,
		ExcludeDirs: cfg.Scan.ExcludeDirs,
		Debounce:    cfg.DebounceWindow(),
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	out.Statusf("👀", "Watching %s (%s files, %s debounce)",
		root, cfg.Scan.Extension, cfg.Watch.Debounce)

	for {
		select {
		case <-ctx.Done():
			out.Newline()
			out.Status("", "Stopped")
			return nil

		case batch, ok := <-w.Batches():
			if !ok {
				return nil
			}
			slog.Info("change batch received",
				slog.Int("changed_files", len(batch)))
			if err := runIndex(ctx, cmd, cfg, root); err != nil {
				// Keep watching; a transient failure should not kill
				// the session.
				out.Warning(fmt.Sprintf("Rebuild failed: %v", err))
			}
		}
	}
}

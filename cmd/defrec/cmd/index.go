package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/defrec/defrec/internal/config"
	"github.com/defrec/defrec/internal/enumerate"
	"github.com/defrec/defrec/internal/extract"
	"github.com/defrec/defrec/internal/index"
	"github.com/defrec/defrec/internal/output"
	"github.com/defrec/defrec/internal/store"
)

func newIndexCmd() *cobra.Command {
	var (
		indexPath string
		backend   string
		ext       string
		forceWalk bool
	)

	cmd := &cobra.Command{
		Use:   "index [root]",
		Short: "Scan a directory tree and rebuild the definition index",
		Long: `Scan source files under root for function definitions and persist
a fresh index. The new index fully replaces any existing one.

The locate database is consulted first when available; --walk forces a
filesystem walk instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

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
			if backend != "" {
				cfg.Index.Backend = backend
			}
			if ext != "" {
				cfg.Scan.Extension = ext
			}
			if forceWalk {
				cfg.Scan.Strategy = "walk"
			}

			return runIndex(ctx, cmd, cfg, root)
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "Index file location (default: from config)")
	cmd.Flags().StringVar(&backend, "backend", "", "Storage backend: json or sqlite (default: detect from path)")
	cmd.Flags().StringVar(&ext, "ext", "", "File extension to scan (default: .py)")
	cmd.Flags().BoolVar(&forceWalk, "walk", false, "Walk the filesystem instead of querying locate")

	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, cfg *config.Config, root string) error {
	out := output.New(cmd.OutOrStdout())
	start := time.Now()

	enum := newEnumerator(cfg)
	builder := index.NewBuilder(extract.New())

	idx, err := builder.BuildRoot(ctx, root, enum)
	if err != nil {
		out.Errorf("Indexing failed: %v", err)
		return err
	}

	st, err := store.New(cfg.Index.Path, cfg.Index.Backend)
	if err != nil {
		return err
	}
	if err := st.Save(idx); err != nil {
		out.Errorf("Failed to save index: %v", err)
		return err
	}

	slog.Info("index rebuilt",
		slog.String("root", root),
		slog.Int("files", idx.Len()),
		slog.Int("names", idx.NameCount()),
		slog.Duration("elapsed", time.Since(start)))

	out.Successf("Indexed %d files (%d definitions) in %s",
		idx.Len(), idx.NameCount(), time.Since(start).Round(time.Millisecond))
	out.Dim(fmt.Sprintf("Index written to %s", st.Location()))
	return nil
}

// newEnumerator builds the enumerator the config asks for.
func newEnumerator(cfg *config.Config) enumerate.Enumerator {
	switch cfg.Scan.Strategy {
	case "locate":
		return enumerate.NewLocate(cfg.Scan.Extension)
	case "walk":
		return enumerate.NewWalk(cfg.Scan.Extension, cfg.Scan.ExcludeDirs)
	default:
		return enumerate.NewAuto(cfg.Scan.Extension, cfg.Scan.ExcludeDirs)
	}
}

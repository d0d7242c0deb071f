// Package cmd provides the CLI commands for defrec.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/defrec/defrec/internal/logging"
	"github.com/defrec/defrec/internal/profiling"
	"github.com/defrec/defrec/pkg/version"
)

var (
	debugMode      bool
	loggingCleanup func()

	profileCPU   string
	profileMem   string
	profileTrace string
	profSession  profiling.Session
)

// NewRootCmd creates the root command for the defrec CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defrec",
		Short: "Index function definitions and recall them by fuzzy match",
		Long: `defrec scans source trees for function definitions, persists a
path-to-names index, and recalls definitions whose names approximately
match a query.

Typical flow:

  defrec index ~/projects/app     build the index
  defrec recall prase_args        find parse_args despite the typo`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation prints usage.
			return cmd.Help()
		},
	}

	cmd.SetVersionTemplate("defrec version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.defrec/logs/")
	cmd.PersistentFlags().String("config", "", "Project directory to read .defrec.yaml from (default: current directory)")

	cmd.PersistentFlags().StringVar(&profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileMem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileTrace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startLoggingAndProfiling
	cmd.PersistentPostRunE = stopLoggingAndProfiling

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newRecallCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLoggingAndProfiling installs the global logger and starts any
// requested profiles. Debug mode adds stderr output on top of the log
// file.
func startLoggingAndProfiling(_ *cobra.Command, _ []string) error {
	cfg := logging.DefaultConfig()
	if debugMode {
		cfg = logging.DebugConfig()
	}

	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)

	if debugMode {
		slog.Info("debug logging enabled",
			slog.String("log_file", logging.DefaultLogPath()))
	}

	if profileCPU != "" {
		if err := profSession.StartCPU(profileCPU); err != nil {
			return err
		}
	}
	if profileTrace != "" {
		if err := profSession.StartTrace(profileTrace); err != nil {
			return err
		}
	}
	if profileMem != "" {
		profSession.DeferHeap(profileMem)
	}
	return nil
}

func stopLoggingAndProfiling(_ *cobra.Command, _ []string) error {
	if err := profSession.Stop(); err != nil {
		return err
	}
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// configDir resolves the directory project configuration is read from.
func configDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		return dir
	}
	return "."
}

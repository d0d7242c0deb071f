package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/defrec/defrec/internal/config"
	"github.com/defrec/defrec/internal/errors"
	"github.com/defrec/defrec/internal/match"
	"github.com/defrec/defrec/internal/output"
	"github.com/defrec/defrec/internal/store"
)

func newRecallCmd() *cobra.Command {
	var (
		indexPath  string
		pathFilter string
		threshold  float64
		minLength  int
		limit      int
		format     string
	)

	cmd := &cobra.Command{
		Use:   "recall <guess>...",
		Short: "Find indexed definitions whose names resemble a guess",
		Long: `Score every indexed definition name against each guess and print
the ones above the similarity threshold, best first.

Guesses are normalized before scoring: spaces and underscores are
stripped and case is ignored, so "parse args" finds parse_args.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir(cmd))
			if err != nil {
				return err
			}
			if indexPath != "" {
				cfg.Index.Path = indexPath
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Match.Threshold = threshold
			}
			if cmd.Flags().Changed("min-length") {
				cfg.Match.MinLength = minLength
			}

			return runRecall(cmd, cfg, args, pathFilter, limit, format)
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "Index file location (default: from config)")
	cmd.Flags().StringVar(&pathFilter, "path", "", "Only report definitions from files whose path contains this substring")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.8, "Similarity a match must exceed (0.0-1.0)")
	cmd.Flags().IntVar(&minLength, "min-length", 3, "Ignore indexed names shorter than this")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum matches to print per guess (0 = all)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

// recallResult groups matches under the guess that produced them.
type recallResult struct {
	Guess   string        `json:"guess"`
	Matches []match.Match `json:"matches"`
}

func runRecall(cmd *cobra.Command, cfg *config.Config, guesses []string, pathFilter string, limit int, format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (expected text or json)", format)
	}

	inner, err := store.New(cfg.Index.Path, cfg.Index.Backend)
	if err != nil {
		return err
	}
	st := store.NewCached(inner)

	idx, err := st.Load()
	if err != nil {
		if errors.IsNotFound(err) {
			out := output.New(cmd.ErrOrStderr())
			out.Errorf("No index found at %s", cfg.Index.Path)
			if s := errors.GetSuggestion(err); s != "" {
				out.Dim(s)
			}
		}
		return err
	}

	scorer := match.NewScorer(cfg.Match.JunkChars, 0)
	engine := match.NewEngine(scorer)
	opts := match.Options{
		PathFilter: pathFilter,
		MinLength:  cfg.Match.MinLength,
		Threshold:  cfg.Match.Threshold,
	}

	results := make([]recallResult, 0, len(guesses))
	for _, guess := range guesses {
		matches := engine.Query(idx, guess, opts)
		if limit > 0 && len(matches) > limit {
			matches = matches[:limit]
		}
		results = append(results, recallResult{Guess: guess, Matches: matches})
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	out := output.New(cmd.OutOrStdout())
	for i, res := range results {
		if len(guesses) > 1 {
			if i > 0 {
				out.Newline()
			}
			out.Bold(res.Guess)
		}
		if len(res.Matches) == 0 {
			out.Dim("  no matches")
			continue
		}
		for _, m := range res.Matches {
			out.Statusf("", "%.1f  %-30s %s", m.Score, m.Name, m.Path)
		}
	}
	return nil
}

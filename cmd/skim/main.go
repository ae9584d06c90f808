package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optional .env load for cache/history overrides, the same ambient
	// convenience the teacher's test suite relies on (cmd/morfx's
	// main_execution_test.go, db/sqlite_integration_test.go).
	_ = godotenv.Load()

	os.Exit(newRootCommand().Execute2())
}

func newRootCommand() *rootCommand {
	return &rootCommand{}
}

// rootCommand wraps cobra.Command so Execute2 can return the process
// exit code directly instead of only an error, matching the exit-code
// contract of spec.md §6.
type rootCommand struct {
	opts Options
	code int
}

func (r *rootCommand) Execute2() int {
	var modeName string

	cmd := &cobra.Command{
		Use:   "skim FILE",
		Short: "Reduce source code to its public shape",
		Long: "skim is a language-aware source-code skimmer: it reduces source text " +
			"to declarations, signatures, type definitions, headings, or key skeletons " +
			"while discarding implementation detail.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(modeName)
			if err != nil {
				r.code = exitInvalidFlag
				return err
			}
			r.opts.Targets = args
			r.opts.Mode = mode
			r.opts.ModeName = modeName
			r.code = run(r.opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "structure", "transform mode: structure, signatures, types, full")
	cmd.Flags().StringVar(&r.opts.Language, "language", "", "source language (required for stdin, optional fallback otherwise)")
	cmd.Flags().BoolVar(&r.opts.NoHeader, "no-header", false, "suppress per-file separators in multi-file output")
	cmd.Flags().IntVar(&r.opts.Jobs, "jobs", 4, "number of concurrent workers (1-128)")
	cmd.Flags().BoolVar(&r.opts.NoCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&r.opts.ClearCache, "clear-cache", false, "clear the result cache before running")
	cmd.Flags().BoolVar(&r.opts.ShowStats, "show-stats", false, "print token-reduction statistics to stderr")
	cmd.Flags().StringVar(&r.opts.History, "history", "", "append successful transforms to a history log at this DSN (local file or libsql URL)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if r.code == 0 {
			r.code = exitInvalidFlag
		}
		return r.code
	}
	return r.code
}

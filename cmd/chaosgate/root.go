package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	repoDir string
	baseRef string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chaosgate",
	Short: "Pull-request gatekeeper for the chaos board",
	Long: `chaosgate inspects a change set against the chaos-board rules.
Only the two board files may change, index.html only between its
CHAOS_START/CHAOS_END markers, and the edited content must pass the
board's HTML and CSS safety checks.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&repoDir, "repo", ".", "Repository root to validate")
	rootCmd.PersistentFlags().StringVar(&baseRef, "base", "", "Base branch to compare against (default: auto-detect)")
}

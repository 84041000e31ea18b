package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	chaosgate "github.com/chaos-board/chaosgate"
	"github.com/chaos-board/chaosgate/internal/watch"
	"github.com/chaos-board/chaosgate/pkg/gate"
	"github.com/chaos-board/chaosgate/pkg/git"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the checks whenever a board file changes",
	Long: `Watch the repository and re-validate the change set after every
edit to a board file. Intended for local development; press Ctrl-C to stop.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		cfg, err := gate.LoadConfig(repoDir)
		if err != nil {
			fatal("Failed to load config", err)
		}

		client := git.NewClient(repoDir, slog.Default())
		client.Remote = cfg.Remote

		base := resolveBase(ctx, cfg, client)

		validator, err := chaosgate.New(repoDir,
			chaosgate.WithSource(client),
			chaosgate.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize", err)
		}

		fmt.Printf("Watching %s against %s (Ctrl-C to stop)\n", repoDir, base)

		runner := &watch.Runner{
			Dir:       repoDir,
			BaseRef:   base,
			Patterns:  cfg.Watch.Patterns,
			Debounce:  time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
			Validator: validator,
			Logger:    slog.Default(),
			OnResult:  printResult,
		}
		if err := runner.Run(ctx); err != nil {
			fatal("Watch failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

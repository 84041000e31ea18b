package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	chaosgate "github.com/chaos-board/chaosgate"
	"github.com/chaos-board/chaosgate/pkg/core"
	"github.com/chaos-board/chaosgate/pkg/gate"
	"github.com/chaos-board/chaosgate/pkg/git"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the current change set against the chaos-board rules",
	Long: `Validate the pending change set once and exit.

Exit codes: 0 when every check passed, 2 when at least one check failed,
1 on environment failures (git unavailable, base branch unreachable).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

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

		result, err := validator.Validate(ctx, base)
		if err != nil {
			// Environment failure, distinct from a failed check.
			fatal("Chaos PR validation aborted", err)
		}

		printResult(result)
		if !result.OK {
			os.Exit(2)
		}
	},
}

// resolveBase picks the base branch: flag, then config, then git detection.
func resolveBase(ctx context.Context, cfg gate.Config, client *git.Client) string {
	if baseRef != "" {
		return baseRef
	}
	if cfg.BaseRef != "" {
		return cfg.BaseRef
	}
	return client.BaseRef(ctx)
}

func printResult(result core.Result) {
	if result.OK {
		fmt.Println("Chaos PR validation: OK")
		return
	}

	fmt.Println("Chaos PR validation: FAILED")
	for _, v := range result.Violations {
		fmt.Printf("- %s\n", v.Message)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	chaosgate "github.com/chaos-board/chaosgate"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chaosgate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chaosgate version %s\n", chaosgate.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

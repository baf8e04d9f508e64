package main

import (
	"os"

	"github.com/templui/goaltracker/cmd/goals/cmd"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "goals",
		Short:        "Operations tooling for the goal tracker",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.SeedCmd())
	rootCmd.AddCommand(cmd.AchievementsCmd())
	rootCmd.AddCommand(cmd.RecomputeCmd())
	rootCmd.AddCommand(cmd.ReportCmd())
	rootCmd.AddCommand(cmd.ExportCmd())
	rootCmd.AddCommand(cmd.TokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

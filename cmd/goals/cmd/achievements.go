package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/templui/goaltracker/internal/app"
	"github.com/templui/goaltracker/internal/model"
)

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the starter achievement templates that are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.ErrOrStderr(), func(a *app.App) error {
				added, err := a.AchievementService.SeedDefaultTemplates()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d achievement templates\n", added)
				return nil
			})
		},
	}
}

func AchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievement templates and whether any goal has unlocked them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.ErrOrStderr(), func(a *app.App) error {
				unlocked, locked, err := a.AchievementService.Status()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printTemplates(out, "Unlocked", unlocked)
				printTemplates(out, "Locked", locked)
				return nil
			})
		},
	}
}

func printTemplates(w io.Writer, heading string, templates []*model.AchievementTemplate) {
	fmt.Fprintf(w, "%s (%d)\n", heading, len(templates))
	for _, t := range templates {
		fmt.Fprintf(w, "  %-24s %s\n", t.Name, t.Condition)
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/goaltracker/internal/app"
)

func RecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Re-derive every goal and check achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.ErrOrStderr(), func(a *app.App) error {
				results, err := a.GoalService.RecomputeAll()
				out := cmd.OutOrStdout()
				for _, r := range results {
					g := r.Goal.Base()
					fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", g.ID, g.Title, g.Status, r.Progress.Text)
					for _, u := range r.Unlocks {
						fmt.Fprintf(out, "\tunlocked %s\n", u.Template.Name)
					}
				}
				return err
			})
		},
	}
}

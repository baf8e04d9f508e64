package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/goaltracker/internal/app"
)

func ReportCmd() *cobra.Command {
	var asHTML bool

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the goal summary report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.ErrOrStderr(), func(a *app.App) error {
				render := a.ReportService.Markdown
				if asHTML {
					render = a.ReportService.HTML
				}
				body, err := render()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(body)
				return err
			})
		},
	}
	reportCmd.Flags().BoolVar(&asHTML, "html", false, "render HTML instead of Markdown")

	return reportCmd
}

func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Upload the summary report to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.ErrOrStderr(), func(a *app.App) error {
				export, err := a.ReportService.Export(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", export.Key, export.URL)
				return nil
			})
		},
	}
}

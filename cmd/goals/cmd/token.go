package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/goaltracker/internal/config"
	"github.com/templui/goaltracker/internal/service"
)

func TokenCmd() *cobra.Command {
	var subject string

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin bearer token signed with ADMIN_JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			token, err := service.NewAdminAuthService(cfg.AdminJWTSecret, cfg.AdminJWTExpiry).IssueToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&subject, "subject", "admin", "token subject recorded in audit logs")

	return tokenCmd
}

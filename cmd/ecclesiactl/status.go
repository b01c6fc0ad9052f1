package main

import (
	"encoding/json"

	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/backend"
	"ecclesia-backend/internal/service"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var session sessionFlags
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether setup, onboarding or nothing is required for a principal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := auth.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
			if err != nil {
				return codeError(exitUsage, "%s", err)
			}
			ctx, err := session.context(cmd.Context(), svc)
			if err != nil {
				return err
			}

			stores, err := backend.Open(cfg)
			if err != nil {
				return codeError(exitUnavailable, "open data store: %s", err)
			}
			defer stores.Close()

			resp, err := service.NewSystemService(stores.Tenants, stores.Profiles).Status(ctx)
			if err != nil {
				return codeError(exitUnavailable, "%s", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	session.register(cmd)
	return cmd
}

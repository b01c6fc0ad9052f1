package main

import (
	"fmt"
	"time"

	"ecclesia-backend/internal/auth"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		sub   string
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a session token signed with JWT_SECRET",
		Long:  "Mint a bearer token for local development. The subject must be the principal id the profile will be linked to.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			id := uuid.New()
			if sub != "" {
				if id, err = uuid.Parse(sub); err != nil {
					return codeError(exitUsage, "--sub must be a UUID: %s", err)
				}
			}
			if ttl <= 0 {
				ttl = cfg.JWTTTL
			}

			svc, err := auth.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer, ttl)
			if err != nil {
				return codeError(exitUsage, "%s", err)
			}
			token, err := svc.GenerateJWT(&auth.Principal{ID: id, Email: email})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "Principal id (random when empty)")
	cmd.Flags().StringVar(&email, "email", "", "Principal email")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to JWT_TTL)")
	return cmd
}

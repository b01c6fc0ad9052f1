package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"ecclesia-backend/internal/auth"
	"ecclesia-backend/internal/backend"
	"ecclesia-backend/internal/bootstrap"
	"ecclesia-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// sessionFlags identify the principal a command acts as
type sessionFlags struct {
	token     string
	principal string
	email     string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.token, "token", "", "Bearer token of the acting principal (required for DATA_STORE=rest)")
	cmd.Flags().StringVar(&f.principal, "principal", "", "Principal id to act as when no token is given")
	cmd.Flags().StringVar(&f.email, "email", "", "Principal email, used with --principal")
}

// context returns ctx carrying the principal the flags name. With neither a
// token nor a principal id the context stays anonymous.
func (f *sessionFlags) context(ctx context.Context, svc *auth.AuthService) (context.Context, error) {
	switch {
	case f.token != "":
		p, err := svc.PrincipalFromToken(f.token)
		if err != nil {
			return nil, codeError(exitUsage, "invalid --token: %s", err)
		}
		return auth.WithPrincipal(ctx, p), nil
	case f.principal != "":
		id, err := uuid.Parse(f.principal)
		if err != nil {
			return nil, codeError(exitUsage, "--principal must be a UUID: %s", err)
		}
		return auth.WithPrincipal(ctx, &auth.Principal{ID: id, Email: f.email}), nil
	default:
		return ctx, nil
	}
}

func newBootstrapCmd() *cobra.Command {
	var (
		session    sessionFlags
		tenantName string
		fullName   string
		quiet      bool
	)
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create a tenant and link the principal to it as administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := auth.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
			if err != nil {
				return codeError(exitUsage, "%s", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if ctx, err = session.context(ctx, svc); err != nil {
				return err
			}

			stores, err := backend.Open(cfg)
			if err != nil {
				return codeError(exitUnavailable, "open data store: %s", err)
			}
			defer stores.Close()

			bootstrapService := service.NewBootstrapService(stores.Runner(cfg), stores.Profiles, validator.New())
			report := func(msg string) {
				if !quiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "... %s\n", msg)
				}
			}

			resp, err := bootstrapService.Bootstrap(ctx, &service.BootstrapRequest{TenantName: tenantName, FullName: fullName}, report, nil)
			if err != nil {
				return codeError(exitCodeFor(err), "%s", bootstrap.OperatorMessage(err))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	session.register(cmd)
	cmd.Flags().StringVar(&tenantName, "tenant", "", "Tenant display name")
	cmd.Flags().StringVar(&fullName, "name", "", "Operator display name")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print progress messages")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

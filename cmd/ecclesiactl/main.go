package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"ecclesia-backend/internal/bootstrap"
	"ecclesia-backend/internal/config"
	apperrors "ecclesia-backend/internal/errors"
	"ecclesia-backend/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitFailure     = 1
	exitBootstrap   = 2
	exitUsage       = 3
	exitUnavailable = 4
)

// exitErr carries a numeric exit code through the cobra error path
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintln(stderr, "Error:", err)
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "ecclesiactl",
		Short:         "Operate an ecclesia backend",
		Long:          "ecclesiactl mints development sessions, bootstraps tenants and inspects the data store the server is configured against.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(logLevel, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return codeError(exitUsage, "%s", err)
	})
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(
		newTokenCmd(),
		newBootstrapCmd(),
		newStatusCmd(),
		newMigrateCmd(),
	)
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, codeError(exitUsage, "%s", err)
	}
	return cfg, nil
}

// exitCodeFor maps a bootstrap failure onto the CLI exit code
func exitCodeFor(err error) int {
	switch {
	case apperrors.IsValidation(err), apperrors.IsAuthentication(err):
		return exitUsage
	case bootstrap.KindOf(err) == bootstrap.KindProvisioningTimeout:
		return exitUnavailable
	default:
		return exitBootstrap
	}
}

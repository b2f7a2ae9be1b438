package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewLoginCmd builds the subcommand that exchanges credentials for a
// bearer token.
func NewLoginCmd(configPath, baseURL, timeout *string) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the bearer token the other commands need",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), cmd.OutOrStdout(), *configPath, *baseURL, *timeout, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", os.Getenv("SYLLABUS_EMAIL"), "account email")
	cmd.Flags().StringVar(&password, "password", os.Getenv("SYLLABUS_PASSWORD"), "account password")
	return cmd
}

func runLogin(ctx context.Context, out io.Writer, configPath, baseURL, timeout, email, password string) error {
	service, err := buildService(configPath, baseURL, timeout)
	if err != nil {
		return err
	}
	session, err := service.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Logged in as %s (%s)\n", session.Username, session.Role)
	fmt.Fprintf(out, "export SYLLABUS_TOKEN=%s\n", session.Token)
	return nil
}

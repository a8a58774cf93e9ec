package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/contact"
	"github.com/folio/folio/internal/email"
	"github.com/folio/folio/internal/logger"
	folio "github.com/folio/folio/sdk/go"
)

// loadConfig is replaced in tests
var loadConfig = config.Load

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "relayctl",
		Short:         "Operator tool for the contact relay",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newTestEmailCmd())
	rootCmd.AddCommand(newSubmitCmd())
	return rootCmd
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check connectivity and authentication with the mail provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			sender, err := email.NewFromConfig(cmd.Context(), cfg.Email, log)
			if err != nil {
				return fmt.Errorf("failed to initialize email provider: %w", err)
			}

			log.Info().Str("provider", cfg.Email.Provider).Msg("verifying email provider...")
			if err := email.Verify(cmd.Context(), sender); err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Email provider %q is ready\n", cfg.Email.Provider)
			return nil
		},
	}
}

func newTestEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-email",
		Short: "Send the diagnostic email to the site owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			sender, err := email.NewFromConfig(cmd.Context(), cfg.Email, log)
			if err != nil {
				return fmt.Errorf("failed to initialize email provider: %w", err)
			}

			id, err := contact.NewRelay(sender, cfg.Email, log).SendTest(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Test email sent to %s (message id %s)\n", cfg.Email.Owner(), id)
			return nil
		},
	}
}

func newSubmitCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
		req     folio.ContactRequest
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Post a contact submission to a running relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := folio.NewClient(folio.Config{BaseURL: baseURL})
			resp, err := client.Submit(ctx, req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&baseURL, "url", "http://localhost:5000", "relay base URL")
	flags.DurationVar(&timeout, "timeout", 45*time.Second, "overall request timeout")
	flags.StringVar(&req.Name, "name", "", "sender name")
	flags.StringVar(&req.Email, "email", "", "sender email address")
	flags.StringVar(&req.Subject, "subject", "", "message subject")
	flags.StringVar(&req.Message, "message", "", "message body")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.New(cfg.Log.Level, "text"), nil
}

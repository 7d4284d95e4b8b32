package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login commands",
	}

	cmd.AddCommand(newLoginRequestCodeCmd())
	cmd.AddCommand(newLoginVerifyCmd())

	return cmd
}

func newLoginRequestCodeCmd() *cobra.Command {
	var phone string

	cmd := &cobra.Command{
		Use:   "request-code",
		Short: "Request a login code for a registered phone number",
		Long: `Request a login code. The code is delivered out of band (in test
deployments it appears in the server log); pass it to 'login verify'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"phone": phone}
			var result SessionResult

			if err := client.Post("/api/v1/login/code", req, &result); err != nil {
				return err
			}

			// Save token so the verify step can reuse the session
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (required)")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newLoginVerifyCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a login code",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"code": code}
			var result SessionResult

			if err := client.Post("/api/v1/login/verify", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Login code (required)")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show current session info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionResult

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

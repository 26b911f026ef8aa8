// ABOUTME: Account CLI commands
// ABOUTME: login, signup, logout, whoami, and password recovery
package cli

import (
	"fmt"

	"github.com/harperreed/riwora/viewmodel"
	"github.com/spf13/cobra"
)

func loginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the user on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = valueOrPrompt(cmd, email, "Email: ", false); err != nil {
				return err
			}
			if password, err = valueOrPrompt(cmd, password, "Password: ", true); err != nil {
				return err
			}

			form := viewmodel.NewLoginForm(a.client)
			form.Email = email
			form.Password = password
			id, d, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}

			if err := a.saveUserID(id.UserID); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			return report(cmd)(d, nil)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	return cmd
}

func signupCmd(a *app) *cobra.Command {
	var first, last, company, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if password, err = valueOrPrompt(cmd, password, "Password: ", true); err != nil {
				return err
			}
			form := viewmodel.NewSignupForm(a.client)
			form.FirstName = first
			form.LastName = last
			form.CompanyName = company
			form.Email = email
			form.Password = password
			return report(cmd)(form.Submit(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&first, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&last, "last-name", "", "Last name (required)")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.clearUserID(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.identity()
			if err != nil {
				return err
			}
			if !id.Present() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", id.UserID)
			if user := a.client.Profile(cmd.Context(), id.UserID); user != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Name:    %s %s\n", user.FirstName, user.LastName)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Email:   %s\n", user.Email)
			}
			return nil
		},
	}
}

func forgotPasswordCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := viewmodel.NewRecoveryForm(a.client)
			form.Email = email
			return report(cmd)(form.Submit(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	return cmd
}

func resetPasswordCmd(a *app) *cobra.Command {
	var token, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using a reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if password, err = valueOrPrompt(cmd, password, "New password: ", true); err != nil {
				return err
			}
			form := viewmodel.NewResetPasswordForm(a.client)
			form.Token = token
			form.NewPassword = password
			return report(cmd)(form.Submit(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Reset token (required)")
	cmd.Flags().StringVar(&password, "password", "", "New password (prompted when omitted)")
	return cmd
}

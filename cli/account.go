// ABOUTME: Profile, notification preference, and password change commands
// ABOUTME: Mirrors the account settings screen
package cli

import (
	"fmt"

	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/spf13/cobra"
)

// mountProfile loads the profile for one command. The caller closes it.
func mountProfile(cmd *cobra.Command, a *app) (*viewmodel.Profile, error) {
	env, err := a.requireEnv()
	if err != nil {
		return nil, err
	}
	p := viewmodel.NewProfile(env)
	if err := p.Mount(cmd.Context()); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile and notification preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := mountProfile(cmd, a)
			if err != nil {
				return err
			}
			defer p.Close()

			u := p.Get()
			if u == nil {
				return fmt.Errorf("profile not available")
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Name:    %s %s\n", u.FirstName, u.LastName)
			_, _ = fmt.Fprintf(out, "Email:   %s\n", u.Email)
			_, _ = fmt.Fprintf(out, "Company: %s\n", orDash(u.CompanyName))
			if n := u.Notifications; n != nil {
				_, _ = fmt.Fprintln(out, "\nNotifications:")
				_, _ = fmt.Fprintf(out, "  push:      %s\n", onOff(n.PushNotifications))
				_, _ = fmt.Fprintf(out, "  messages:  %s\n", onOff(n.NewMessages))
				_, _ = fmt.Fprintf(out, "  customers: %s\n", onOff(n.NewCustomers))
				_, _ = fmt.Fprintf(out, "  tasks:     %s\n", onOff(n.NewTasks))
			}
			return nil
		},
	}

	var updates api.ProfileUpdate
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			if updates == (api.ProfileUpdate{}) {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}
			p, err := mountProfile(cmd, a)
			if err != nil {
				return err
			}
			defer p.Close()
			return report(cmd)(p.UpdateProfile(cmd.Context(), updates))
		},
	}
	update.Flags().StringVar(&updates.FirstName, "first-name", "", "New first name")
	update.Flags().StringVar(&updates.LastName, "last-name", "", "New last name")
	update.Flags().StringVar(&updates.Email, "email", "", "New email")
	update.Flags().StringVar(&updates.CompanyName, "company", "", "New company name")

	cmd.AddCommand(show, update)
	return cmd
}

func notificationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Manage notification preferences",
	}

	var push, messages, customers, tasks bool
	set := &cobra.Command{
		Use:   "set",
		Short: "Change notification toggles; unspecified toggles keep their value",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := mountProfile(cmd, a)
			if err != nil {
				return err
			}
			defer p.Close()

			var prefs models.NotificationPrefs
			if u := p.Get(); u != nil && u.Notifications != nil {
				prefs = *u.Notifications
			}
			flags := cmd.Flags()
			if flags.Changed("push") {
				prefs.PushNotifications = push
			}
			if flags.Changed("messages") {
				prefs.NewMessages = messages
			}
			if flags.Changed("customers") {
				prefs.NewCustomers = customers
			}
			if flags.Changed("tasks") {
				prefs.NewTasks = tasks
			}
			return report(cmd)(p.SetNotifications(cmd.Context(), prefs))
		},
	}
	set.Flags().BoolVar(&push, "push", false, "Push notifications")
	set.Flags().BoolVar(&messages, "messages", false, "New message alerts")
	set.Flags().BoolVar(&customers, "customers", false, "New customer alerts")
	set.Flags().BoolVar(&tasks, "tasks", false, "New task alerts")

	cmd.AddCommand(set)
	return cmd
}

func passwordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
	}

	var current, next, confirm string
	change := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if current, err = valueOrPrompt(cmd, current, "Current password: ", true); err != nil {
				return err
			}
			if next, err = valueOrPrompt(cmd, next, "New password: ", true); err != nil {
				return err
			}
			if confirm, err = valueOrPrompt(cmd, confirm, "Confirm new password: ", true); err != nil {
				return err
			}
			env, err := a.env()
			if err != nil {
				return err
			}
			return report(cmd)(viewmodel.NewProfile(env).ChangePassword(cmd.Context(), current, next, confirm))
		},
	}
	change.Flags().StringVar(&current, "current", "", "Current password (prompted when omitted)")
	change.Flags().StringVar(&next, "new", "", "New password (prompted when omitted)")
	change.Flags().StringVar(&confirm, "confirm", "", "Repeat the new password (prompted when omitted)")

	cmd.AddCommand(change)
	return cmd
}

// ABOUTME: Config inspection and editing commands
package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change local settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Config file:     %s\n", a.cfg.Path())
			_, _ = fmt.Fprintf(out, "API URL:         %s\n", a.cfg.APIURL)
			_, _ = fmt.Fprintf(out, "Request timeout: %s\n", a.cfg.RequestTimeout)
			_, _ = fmt.Fprintf(out, "Log level:       %s\n", a.cfg.LogLevel)
			_, _ = fmt.Fprintf(out, "Data dir:        %s\n", a.cfg.DataDir)
			_, _ = fmt.Fprintf(out, "Sandbox addr:    %s\n", a.cfg.SandboxAddr)
			_, _ = fmt.Fprintf(out, "Sandbox db:      %s\n", a.cfg.SandboxDB)
			return nil
		},
	}

	setURL := &cobra.Command{
		Use:   "set-url <url>",
		Short: "Save the REST API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("invalid URL: %s", args[0])
			}
			if err := a.cfg.SetAPIURL(args[0]); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ API URL set to %s\n", a.cfg.APIURL)
			return nil
		},
	}

	cmd.AddCommand(show, setURL)
	return cmd
}

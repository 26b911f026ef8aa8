// ABOUTME: Long-running commands: the MCP stdio server, the sandbox backend, and the TUI
// ABOUTME: Each runs until its context is cancelled or the peer disconnects
package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/harperreed/riwora/db"
	"github.com/harperreed/riwora/handlers"
	"github.com/harperreed/riwora/tui"
	"github.com/harperreed/riwora/web"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func mcpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve CRM tools over MCP on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			server := handlers.NewServer(env, a.version)
			a.logger.Info("MCP server starting", "version", a.version, "api", a.cfg.APIURL)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

func sandboxCmd(a *app) *cobra.Command {
	var addr, dbPath string
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run a local SQLite-backed REST backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.SandboxAddr
			}
			if dbPath == "" {
				dbPath = a.cfg.SandboxDB
			}
			database, err := db.OpenDatabase(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = database.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sandbox listening on http://%s%s (db %s)\n", addr, web.BasePath, dbPath)
			return web.NewServer(database, a.logger).Start(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config)")
	return cmd
}

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), tui.Options{
				Env:           env,
				Client:        a.client,
				SaveIdentity:  a.saveUserID,
				ClearIdentity: a.clearUserID,
			})
		},
	}
}

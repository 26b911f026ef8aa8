// ABOUTME: Cobra command tree for the riwora CLI
// ABOUTME: Resolves config, logger, session identity, and the REST client once per invocation
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/config"
	"github.com/harperreed/riwora/session"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/spf13/cobra"
)

// app carries the collaborators every command needs.
type app struct {
	version    string
	configPath string
	apiURL     string

	cfg    *config.Config
	logger *log.Logger
	client *api.Client
	stderr io.Writer
}

func Execute(version string) error {
	return NewRoot(version).Execute()
}

func NewRoot(version string) *cobra.Command {
	a := &app{version: version, stderr: os.Stderr}

	root := &cobra.Command{
		Use:           "riwora",
		Short:         "Sales CRM client for customers, deals, tasks, and messages",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/riwora/config.json)")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Override the REST API base URL")

	root.AddCommand(
		loginCmd(a),
		signupCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		forgotPasswordCmd(a),
		resetPasswordCmd(a),
		dashboardCmd(a),
		tasksCmd(a),
		dealsCmd(a),
		customersCmd(a),
		notesCmd(a),
		messagesCmd(a),
		profileCmd(a),
		notificationsCmd(a),
		passwordCmd(a),
		searchCmd(a),
		tuiCmd(a),
		mcpCmd(a),
		sandboxCmd(a),
		configCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.apiURL != "" {
		a.cfg.APIURL = a.apiURL
	}

	a.stderr = cmd.ErrOrStderr()
	a.logger = a.cfg.NewLogger(a.stderr)
	a.client = api.NewClient(a.cfg.APIURL,
		api.WithLogger(a.logger),
		api.WithTimeout(a.cfg.RequestTimeout),
	)
	return nil
}

// withSession opens the session store for the duration of fn. Badger holds a
// directory lock, so the store is never kept open across a command.
func (a *app) withSession(fn func(*session.Store) error) error {
	store, err := session.Open(a.cfg.SessionDir())
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	if err := fn(store); err != nil {
		_ = store.Close()
		return err
	}
	return store.Close()
}

// identity reads the persisted user id once.
func (a *app) identity() (session.Identity, error) {
	var id session.Identity
	err := a.withSession(func(s *session.Store) error {
		var err error
		id, err = s.Identity()
		return err
	})
	return id, err
}

func (a *app) saveUserID(id string) error {
	return a.withSession(func(s *session.Store) error { return s.SetUserID(id) })
}

func (a *app) clearUserID() error {
	return a.withSession(func(s *session.Store) error { return s.ClearUserID() })
}

// env builds the view-model collaborators for the logged-in user. A missing
// identity is not an error here; screens report it.
func (a *app) env() (viewmodel.Env, error) {
	id, err := a.identity()
	if err != nil {
		return viewmodel.Env{}, err
	}
	return viewmodel.Env{
		API:      a.client,
		Identity: id,
		Triggers: viewmodel.NewTriggers(),
		Logger:   a.logger,
	}, nil
}

// requireEnv is env for commands that make no sense logged out.
func (a *app) requireEnv() (viewmodel.Env, error) {
	env, err := a.env()
	if err != nil {
		return env, err
	}
	if !env.Identity.Present() {
		return env, fmt.Errorf("not logged in. Run 'riwora login' first")
	}
	return env, nil
}

// report returns a sink for a form's (Dialog, error) result: it prints a
// successful dialog, or passes the rejection through as the command error.
func report(cmd *cobra.Command) func(viewmodel.Dialog, error) error {
	return func(d viewmodel.Dialog, err error) error {
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", d.Message)
		return nil
	}
}

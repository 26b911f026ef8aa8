// ABOUTME: Deal, task, and dashboard CLI commands
// ABOUTME: Lists print as aligned tables; adds go through the screen forms
package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/harperreed/riwora/liststore"
	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/spf13/cobra"
)

// load mounts a list for one command and returns its items.
func load[T liststore.Keyer](ctx context.Context, l *viewmodel.List[T]) ([]T, error) {
	defer l.Close()
	if err := l.Mount(ctx); err != nil {
		return nil, err
	}
	return l.Items(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func dashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show customer, deal, and sales counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.requireEnv()
			if err != nil {
				return err
			}
			d := viewmodel.NewDashboard(env)
			defer d.Close()
			if err := d.Mount(cmd.Context()); err != nil {
				return err
			}
			data := d.Data()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "New customers:     %d\n", data.NewCustomers)
			_, _ = fmt.Fprintf(out, "Pending customers: %d\n", data.PendingCustomers)
			_, _ = fmt.Fprintf(out, "Be-back customers: %d\n", data.BeBackCustomers)
			_, _ = fmt.Fprintf(out, "Active listings:   %d\n", data.ActiveListings)
			_, _ = fmt.Fprintf(out, "Sales:             %d\n", data.Sales)
			_, _ = fmt.Fprintf(out, "Open deals:        %d\n", data.OpenDeals)
			_, _ = fmt.Fprintf(out, "Closed deals:      %d\n", data.ClosedDeals)
			if rows := d.TaskRows(); len(rows) > 0 {
				_, _ = fmt.Fprintln(out)
				printTaskRows(cmd, rows)
			}
			return nil
		},
	}
}

func tasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and add tasks",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.requireEnv()
			if err != nil {
				return err
			}
			tasks := viewmodel.NewTasks(env)
			if _, err := load(cmd.Context(), tasks.List); err != nil {
				return err
			}
			rows := tasks.Rows()
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks found")
				return nil
			}
			printTaskRows(cmd, rows)
			return nil
		},
	}

	var title, description, deadline, status, priority string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			form := viewmodel.NewAddTaskForm(env, time.Now())
			form.Title = title
			form.Description = description
			if deadline != "" {
				form.Deadline = deadline
			}
			if status != "" {
				form.Status = models.TaskStatus(status)
			}
			if priority != "" {
				form.Priority = models.TaskPriority(priority)
			}
			return report(cmd)(form.Submit(cmd.Context()))
		},
	}
	add.Flags().StringVar(&title, "title", "", "Task title (required)")
	add.Flags().StringVar(&description, "description", "", "Task details")
	add.Flags().StringVar(&deadline, "deadline", "", "Due date as YYYY-MM-DD (default today)")
	add.Flags().StringVar(&status, "status", "", "notStarted, inProgress, done, or archived")
	add.Flags().StringVar(&priority, "priority", "", "high, medium, or low")

	cmd.AddCommand(list, add)
	return cmd
}

func printTaskRows(cmd *cobra.Command, rows []viewmodel.TaskRow) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TITLE\tSTATUS\tPRIORITY\tDEADLINE\tID")
	_, _ = fmt.Fprintln(w, "-----\t------\t--------\t--------\t--")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Title, r.StatusLabel, r.PriorityLabel, orDash(r.Deadline), r.ID)
	}
	_ = w.Flush()
}

func dealsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deals",
		Short: "List and add deals",
	}

	var closed bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List open deals (or closed with --closed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.requireEnv()
			if err != nil {
				return err
			}
			status := models.DealOpen
			if closed {
				status = models.DealClosed
			}
			deals, err := load(cmd.Context(), viewmodel.NewDeals(env, status).List)
			if err != nil {
				return err
			}
			if len(deals) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No deals found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TITLE\tDESCRIPTION\tSTATUS\tID")
			_, _ = fmt.Fprintln(w, "-----\t-----------\t------\t--")
			for _, d := range deals {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Title, orDash(d.Description), d.Status, d.ID)
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&closed, "closed", false, "Show closed deals")

	var title, description string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an open deal",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			form := viewmodel.NewAddDealForm(env)
			form.Title = title
			form.Description = description
			return report(cmd)(form.Submit(cmd.Context()))
		},
	}
	add.Flags().StringVar(&title, "title", "", "Deal title (required)")
	add.Flags().StringVar(&description, "description", "", "Deal description (required)")

	cmd.AddCommand(list, add)
	return cmd
}

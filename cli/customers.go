// ABOUTME: Customer, note, and search CLI commands
// ABOUTME: Customers live in new, be_back, and pending lists
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/spf13/cobra"
)

func parseCustomerType(s string) (models.CustomerType, error) {
	t, ok := models.ParseCustomerType(s)
	if !ok {
		return "", fmt.Errorf("invalid type: %s (valid: new, be_back, pending)", s)
	}
	return t, nil
}

func printCustomers(cmd *cobra.Command, customers []models.Customer) error {
	if len(customers) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No customers found")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tPHONE\tTYPE\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----\t----\t--")
	for _, c := range customers {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.FullName(), orDash(c.Email), orDash(c.Phone), c.Type.Label(), c.ID)
	}
	return w.Flush()
}

func customersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List, add, update, and search customers",
	}

	var listType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List customers of one type",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseCustomerType(listType)
			if err != nil {
				return err
			}
			env, err := a.requireEnv()
			if err != nil {
				return err
			}
			customers, err := load(cmd.Context(), viewmodel.NewCustomers(env, t).List)
			if err != nil {
				return err
			}
			return printCustomers(cmd, customers)
		},
	}
	list.Flags().StringVar(&listType, "type", "new", "Customer type: new, be_back, or pending")

	var first, last, email, phone, addType, notes string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			form := viewmodel.NewAddCustomerForm(env, models.CustomerType(addType))
			form.FirstName = first
			form.LastName = last
			form.Email = email
			form.Phone = phone
			form.Notes = notes
			return report(cmd)(form.Submit(cmd.Context()))
		},
	}
	add.Flags().StringVar(&first, "first-name", "", "First name (required)")
	add.Flags().StringVar(&last, "last-name", "", "Last name (required)")
	add.Flags().StringVar(&email, "email", "", "Email (required)")
	add.Flags().StringVar(&phone, "phone", "", "Phone (required)")
	add.Flags().StringVar(&addType, "type", "new", "Customer type: new, be_back, or pending")
	add.Flags().StringVar(&notes, "notes", "", "Notes")

	var uFirst, uLast, uEmail, uPhone, uType, uNotes string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			current := models.Customer{ID: args[0]}
			if c := a.client.Customer(cmd.Context(), args[0]); c != nil {
				current = *c
			}

			form := viewmodel.NewEditCustomerForm(env, current)
			flags := cmd.Flags()
			if flags.Changed("first-name") {
				form.FirstName = uFirst
			}
			if flags.Changed("last-name") {
				form.LastName = uLast
			}
			if flags.Changed("email") {
				form.Email = uEmail
			}
			if flags.Changed("phone") {
				form.Phone = uPhone
			}
			if flags.Changed("type") {
				form.Type = models.CustomerType(uType)
			}
			if flags.Changed("notes") {
				form.Notes = uNotes
			}
			return report(cmd)(form.Submit(cmd.Context()))
		},
	}
	update.Flags().StringVar(&uFirst, "first-name", "", "New first name")
	update.Flags().StringVar(&uLast, "last-name", "", "New last name")
	update.Flags().StringVar(&uEmail, "email", "", "New email")
	update.Flags().StringVar(&uPhone, "phone", "", "New phone")
	update.Flags().StringVar(&uType, "type", "", "Move to list: new, be_back, or pending")
	update.Flags().StringVar(&uNotes, "notes", "", "Replacement notes")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a customer with notes and purchases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			p := viewmodel.NewCustomerProfile(env, models.Customer{ID: args[0]})
			if err := p.Mount(cmd.Context()); err != nil {
				return err
			}
			defer p.Unmount()

			c := p.Customer()
			if c.FullName() == "" {
				return fmt.Errorf("customer not found: %s", args[0])
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Name:  %s\n", c.FullName())
			_, _ = fmt.Fprintf(out, "Type:  %s\n", c.Type.Label())
			_, _ = fmt.Fprintf(out, "Email: %s\n", orDash(c.Email))
			_, _ = fmt.Fprintf(out, "Phone: %s\n", orDash(c.Phone))
			if c.Notes != "" {
				_, _ = fmt.Fprintf(out, "Notes: %s\n", c.Notes)
			}
			if notes := p.Notes.Items(); len(notes) > 0 {
				_, _ = fmt.Fprintln(out, "\nVisit notes:")
				for _, n := range notes {
					_, _ = fmt.Fprintf(out, "  %s: %s\n", n.Title, n.Content)
				}
			}
			if purchases := p.Purchases.Items(); len(purchases) > 0 {
				_, _ = fmt.Fprintln(out, "\nPurchases:")
				for _, pu := range purchases {
					_, _ = fmt.Fprintf(out, "  %s (%s)\n", pu.Name, pu.SKU)
				}
			}
			return nil
		},
	}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search customers by name, email, or phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			s := viewmodel.NewSearch(env)
			if err := s.Mount(cmd.Context()); err != nil {
				return err
			}
			defer s.Unmount()
			if err := s.SetQuery(args[0]); err != nil {
				return err
			}
			return printCustomers(cmd, s.Items())
		},
	}

	cmd.AddCommand(list, add, update, show, search)
	return cmd
}

func notesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List and add customer notes",
	}

	list := &cobra.Command{
		Use:   "list <customer-id>",
		Short: "List notes for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			p := viewmodel.NewCustomerProfile(env, models.Customer{ID: args[0]})
			notes, err := load(cmd.Context(), p.Notes)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No notes found")
				return nil
			}
			for _, n := range notes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n", n.Title, n.Content)
			}
			return nil
		},
	}

	var title, content string
	add := &cobra.Command{
		Use:   "add <customer-id>",
		Short: "Add a note to a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			p := viewmodel.NewCustomerProfile(env, models.Customer{ID: args[0]})
			return report(cmd)(p.AddNote(cmd.Context(), title, content))
		},
	}
	add.Flags().StringVar(&title, "title", "", "Note title (required)")
	add.Flags().StringVar(&content, "content", "", "Note body (required)")

	cmd.AddCommand(list, add)
	return cmd
}

func searchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search customers, deals, and products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := a.client.Search(cmd.Context(), args[0])
			out := cmd.OutOrStdout()
			if len(res.Customers)+len(res.Deals)+len(res.Products) == 0 {
				_, _ = fmt.Fprintln(out, "No results")
				return nil
			}
			if len(res.Customers) > 0 {
				_, _ = fmt.Fprintln(out, "Customers:")
				for _, c := range res.Customers {
					_, _ = fmt.Fprintf(out, "  %s (%s)\n", c.FullName(), c.ID)
				}
			}
			if len(res.Deals) > 0 {
				_, _ = fmt.Fprintln(out, "Deals:")
				for _, d := range res.Deals {
					_, _ = fmt.Fprintf(out, "  %s [%s] (%s)\n", d.Title, d.Status, d.ID)
				}
			}
			if len(res.Products) > 0 {
				_, _ = fmt.Fprintln(out, "Products:")
				for _, p := range res.Products {
					_, _ = fmt.Fprintf(out, "  %s %s (%s)\n", p.Name, orDash(p.SKU), p.ID)
				}
			}
			return nil
		},
	}
}

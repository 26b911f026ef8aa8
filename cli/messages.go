// ABOUTME: Messaging CLI commands
// ABOUTME: inbox shows the latest message per customer; thread and send work on one conversation
package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/spf13/cobra"
)

func messagesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Read and send customer messages",
	}

	inbox := &cobra.Command{
		Use:   "inbox",
		Short: "Show the latest message with each customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.requireEnv()
			if err != nil {
				return err
			}
			entries, err := load(cmd.Context(), viewmodel.NewInbox(env).List)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No messages")
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "CUSTOMER\tLAST MESSAGE\tDATE\tCUSTOMER ID")
			_, _ = fmt.Fprintln(w, "--------\t------------\t----\t-----------")
			for _, e := range entries {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CustomerName, e.Message.Message, orDash(models.FormatMessageDate(e.Time(), now)), e.Receiver)
			}
			return w.Flush()
		},
	}

	thread := &cobra.Command{
		Use:   "thread <customer-id>",
		Short: "Show the conversation with a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.requireEnv()
			if err != nil {
				return err
			}
			c := viewmodel.NewConversation(env, args[0], "")
			msgs, err := load(cmd.Context(), c.List)
			if err != nil {
				return err
			}
			printThread(cmd, c, msgs)
			return nil
		},
	}

	send := &cobra.Command{
		Use:   "send <customer-id> <text>",
		Short: "Send a message to a customer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.env()
			if err != nil {
				return err
			}
			c := viewmodel.NewConversation(env, args[0], "")
			defer c.Close()
			if err := c.Mount(cmd.Context()); err != nil {
				return err
			}
			if err := c.Send(cmd.Context(), args[1]); err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Message sent to %s\n", orDash(c.CustomerName()))
			return nil
		},
	}

	cmd.AddCommand(inbox, thread, send)
	return cmd
}

func printThread(cmd *cobra.Command, c *viewmodel.Conversation, msgs []models.Message) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Conversation with %s\n\n", orDash(c.CustomerName()))
	if len(msgs) == 0 {
		_, _ = fmt.Fprintln(out, "No messages yet")
		return
	}
	now := time.Now()
	for _, m := range msgs {
		who := c.CustomerName()
		if c.IsMine(m) {
			who = "You"
		}
		_, _ = fmt.Fprintf(out, "[%s] %s: %s\n", orDash(models.FormatMessageDate(m.Time(), now)), who, m.Message)
	}
}

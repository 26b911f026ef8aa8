// ABOUTME: Interactive input helpers for the CLI
// ABOUTME: Hidden password entry on terminals, plain line reads otherwise
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readLine prompts on stderr and reads one line from the command's input.
func readLine(cmd *cobra.Command, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a password without echo when stdin is a terminal.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return readLine(cmd, prompt)
}

// valueOrPrompt returns v, or asks for it when empty.
func valueOrPrompt(cmd *cobra.Command, v, prompt string, secret bool) (string, error) {
	if v != "" {
		return v, nil
	}
	if secret {
		return readSecret(cmd, prompt)
	}
	return readLine(cmd, prompt)
}

// ABOUTME: Entry point for the riwora CLI, TUI, MCP server, and sandbox backend
// ABOUTME: All routing lives in the cobra tree under cli/
package main

import (
	"os"

	"github.com/harperreed/riwora/cli"
)

const version = "0.2.0"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}

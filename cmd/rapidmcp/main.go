// Package main is the entry point for the rapidmcp MCP server.
//
// Run without a subcommand, rapidmcp loads every command file from the
// commands directory and serves them as MCP tools over stdin/stdout:
//
// 1. Initialize logging (stderr only; stdout carries JSON-RPC)
// 2. Load configuration (optional config file, then flags)
// 3. Load the command registry, aborting on the first bad file
// 4. Serve requests until stdin is closed
//
// The commands, show and config subcommands inspect the same registry and
// configuration without starting the server.
package main

import (
	"os"

	"rapidmcp/internal/logging"
)

func main() {
	appLogger := logging.NewAppLogger()

	if err := newRootCmd(appLogger).Execute(); err != nil {
		appLogger.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"rapidmcp/internal/mcp"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server name, version and MCP protocol revision",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (protocol %s)\n", mcp.ServerName, mcp.ServerVersion, mcp.ProtocolVersion)
		},
	}
}

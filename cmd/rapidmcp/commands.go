package main

import (
	"fmt"

	"rapidmcp/internal/ui"

	"github.com/spf13/cobra"
)

func newCommandsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "commands",
		Aliases: []string{"ls"},
		Short:   "List the commands that would be served as tools",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := a.loadRegistry(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.CommandTable(registry.List()))
			return nil
		},
	}
}

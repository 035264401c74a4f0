package main

import (
	"fmt"

	"rapidmcp/internal/ui"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		raw   bool
		style string
		width int
	)

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show a command's parameters and prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.loadRegistry(cmd)
			if err != nil {
				return err
			}

			found, ok := registry.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown command %q", args[0])
			}

			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprint(out, found.Prompt)
				return nil
			}

			detail, err := ui.CommandDetail(found, style, width)
			if err != nil {
				return err
			}
			fmt.Fprint(out, detail)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the prompt template verbatim")
	cmd.Flags().StringVar(&style, "style", ui.DefaultStyle, "glamour style for the prompt (auto, dark, light, notty, ...)")
	cmd.Flags().IntVar(&width, "width", ui.DefaultWordWrap, "word wrap width for the prompt")

	return cmd
}

package main

import (
	"fmt"
	"os"

	"rapidmcp/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, exists := a.configLocation()
				status := "not found, defaults in use"
				if exists {
					status = "found"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, status)
				return nil
			},
		},
		newConfigInitCmd(a),
	)

	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, exists := a.configLocation()
			if exists && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}

			var err error
			cfg := config.DefaultConfig()
			if cmd.Flags().Changed("commands-dir") {
				cfg.CommandsDir = a.commandsDir
			}
			if a.configPath != "" {
				err = cfg.SaveTo(path)
			} else {
				// Always the user config home, even when a system-wide file was found.
				path = config.ConfigPath()
				err = cfg.Save()
			}
			if err != nil {
				return err
			}

			a.logger.Info("Configuration written", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}

// configLocation resolves the config file the other subcommands would read.
func (a *app) configLocation() (string, bool) {
	if a.configPath != "" {
		_, err := os.Stat(a.configPath)
		return a.configPath, err == nil
	}
	return config.FindConfigFile()
}

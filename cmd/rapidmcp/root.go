package main

import (
	"fmt"
	"os"

	"rapidmcp/internal/command"
	"rapidmcp/internal/config"
	"rapidmcp/internal/logging"
	"rapidmcp/internal/mcp"
	"rapidmcp/pkg/fileops"

	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands.
type app struct {
	logger      *logging.AppLogger
	configPath  string
	commandsDir string
}

func newRootCmd(logger *logging.AppLogger) *cobra.Command {
	a := &app{logger: logger}

	root := &cobra.Command{
		Use:   "rapidmcp",
		Short: "Serve YAML prompt commands as MCP tools over stdio",
		Long: `rapidmcp loads command definitions from a directory of YAML files and
exposes each one as a Model Context Protocol tool. Requests are read from
stdin and responses written to stdout, one JSON-RPC message per line.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runServer,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rapidmcp/config.yaml)")
	root.PersistentFlags().StringVarP(&a.commandsDir, "commands-dir", "d", config.DefaultCommandsDir, "directory holding *.yaml command files")

	root.AddCommand(
		newCommandsCmd(a),
		newShowCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) runServer(cmd *cobra.Command, _ []string) error {
	a.logger.Infof("Starting %s...", mcp.ServerName)

	registry, err := a.loadRegistry(cmd)
	if err != nil {
		return err
	}

	server := mcp.NewServer(registry, a.logger)
	if err := server.Serve(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// loadConfig reads the config file and applies flag overrides on top of it.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("commands-dir") {
		cfg.CommandsDir = a.commandsDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// DEBUG in the environment takes precedence over the configured level.
	if os.Getenv("DEBUG") == "" {
		if err := a.logger.SetLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}

	a.logger.DebugObject("config", cfg)
	return cfg, nil
}

func (a *app) loadRegistry(cmd *cobra.Command) (*command.Registry, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	registry := command.NewRegistry(a.logger, cfg.MaxFileSize)
	if err := registry.LoadFromDirectory(fileops.ExpandPath(cfg.CommandsDir)); err != nil {
		return nil, fmt.Errorf("failed to load commands: %w", err)
	}

	a.logger.Infof("Loaded %d commands", registry.Len())
	return registry, nil
}

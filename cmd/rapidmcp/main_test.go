package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rapidmcp/internal/command"
	"rapidmcp/internal/config"
	"rapidmcp/internal/logging"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greetYAML = "name: greet\nversion: \"1\"\ndescription: \"Greet\"\nprompt: \"Hello!\"\n"

// isolate points config discovery at an empty temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()

	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(home, "system"))
	t.Setenv("DEBUG", "")
	xdg.Reload()

	return home
}

func commandsDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

type result struct {
	stdout string
	logs   string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	logger, logs := logging.NewTestLogger()

	root := newRootCmd(logger)
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)

	err := root.Execute()
	return result{stdout: out.String(), logs: logs.String(), err: err}
}

func TestServe(t *testing.T) {
	isolate(t)
	dir := commandsDir(t, map[string]string{"greet.yaml": greetYAML})

	stdin := `{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
		`not json` + "\n" +
		`{"jsonrpc":"2.0","id":"x","method":"tools/call","params":{"name":"greet"}}` + "\n"

	res := execute(t, stdin, "--commands-dir", dir)
	require.NoError(t, res.err)

	assert.Equal(t,
		`{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05","capabilities":{"tools":{}},"serverInfo":{"name":"rapid-mcp-server-rust","version":"0.1.0"}}}`+"\n"+
			`{"jsonrpc":"2.0","id":"x","result":{"content":[{"type":"text","text":"Hello!"}]}}`+"\n",
		res.stdout)

	assert.Contains(t, res.logs, "Starting rapid-mcp-server-rust...")
	assert.Contains(t, res.logs, "Loaded command: greet")
	assert.Contains(t, res.logs, "Loaded 1 commands")
	assert.Less(t, strings.Index(res.logs, "Starting"), strings.Index(res.logs, "Loaded command"))
}

func TestServe_DefaultCommandsDir(t *testing.T) {
	isolate(t)
	work := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(work, "commands"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(work, "commands", "greet.yaml"), []byte(greetYAML), 0644))
	t.Chdir(work)

	res := execute(t, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`+"\n")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"name":"greet"`)
}

func TestServe_EmptyInput(t *testing.T) {
	isolate(t)

	res := execute(t, "", "-d", commandsDir(t, nil))
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.logs, "Loaded 0 commands")
}

func TestServe_MissingCommandsDir(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "nope")

	res := execute(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`+"\n", "-d", missing)
	require.Error(t, res.err)

	var dirErr *command.DirError
	assert.True(t, errors.As(res.err, &dirErr))
	assert.Empty(t, res.stdout, "nothing reaches the wire")
}

func TestServe_InvalidCommandFile(t *testing.T) {
	isolate(t)
	dir := commandsDir(t, map[string]string{
		"greet.yaml":  greetYAML,
		"broken.yaml": "name: broken\n",
	})

	res := execute(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`+"\n", "-d", dir)
	require.Error(t, res.err)

	var parseErr *command.ParseError
	require.True(t, errors.As(res.err, &parseErr))
	assert.Equal(t, filepath.Join(dir, "broken.yaml"), parseErr.File)
	assert.Empty(t, res.stdout)
}

func TestServe_RejectsArguments(t *testing.T) {
	isolate(t)

	res := execute(t, "", "extra")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown command")
}

func TestConfigPrecedence(t *testing.T) {
	home := isolate(t)
	fromFile := commandsDir(t, map[string]string{"file.yaml": "name: from-file\nversion: \"1\"\ndescription: d\nprompt: p\n"})
	fromFlag := commandsDir(t, map[string]string{"flag.yaml": "name: from-flag\nversion: \"1\"\ndescription: d\nprompt: p\n"})

	cfgPath := filepath.Join(home, "rapidmcp", "config.yaml")
	cfg := config.Config{CommandsDir: fromFile, MaxFileSize: 4096}
	require.NoError(t, cfg.SaveTo(cfgPath))

	list := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n"

	res := execute(t, list)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"name":"from-file"`)

	res = execute(t, list, "-d", fromFlag)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"name":"from-flag"`)
	assert.NotContains(t, res.stdout, "from-file")
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	dir := commandsDir(t, map[string]string{"greet.yaml": greetYAML})

	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("commands_dir: "+dir+"\nmax_file_size: 16\n"), 0644))

	res := execute(t, "", "--config", cfgPath)
	require.Error(t, res.err, "the configured size limit applies")
	assert.Contains(t, res.err.Error(), "exceeds limit")

	res = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "failed to load config")
}

func TestCommandsCmd(t *testing.T) {
	isolate(t)
	dir := commandsDir(t, map[string]string{
		"greet.yaml": greetYAML,
		"bye.yaml":   "name: bye\nversion: \"2\"\ndescription: Say goodbye\nprompt: Bye\nparameters:\n  - {name: who, type: string, description: d}\n",
	})

	res := execute(t, "", "commands", "-d", dir)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "greet")
	assert.Contains(t, res.stdout, "Say goodbye")
	assert.Less(t, strings.Index(res.stdout, "bye"), strings.Index(res.stdout, "greet"), "sorted by name")
}

func TestShowCmd(t *testing.T) {
	isolate(t)
	dir := commandsDir(t, map[string]string{
		"greet.yaml": "name: greet\nversion: \"1\"\ndescription: Greet\nparameters:\n  - {name: who, type: string, description: Who, required: true}\nprompt: \"Hello, {{who}}!\"\n",
	})

	t.Run("rendered", func(t *testing.T) {
		res := execute(t, "", "show", "greet", "-d", dir, "--style", "notty")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "who (string")
		assert.Contains(t, res.stdout, "Hello")
	})

	t.Run("raw", func(t *testing.T) {
		res := execute(t, "", "show", "greet", "-d", dir, "--raw")
		require.NoError(t, res.err)
		assert.Equal(t, "Hello, {{who}}!", res.stdout)
	})

	t.Run("unknown", func(t *testing.T) {
		res := execute(t, "", "show", "nope", "-d", dir)
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), `unknown command "nope"`)
	})

	t.Run("requires a name", func(t *testing.T) {
		res := execute(t, "", "show", "-d", dir)
		require.Error(t, res.err)
	})
}

func TestVersionCmd(t *testing.T) {
	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "rapid-mcp-server-rust 0.1.0 (protocol 2024-11-05)\n", res.stdout)
}

func TestConfigCmd(t *testing.T) {
	home := isolate(t)
	expected := filepath.Join(home, "rapidmcp", "config.yaml")

	res := execute(t, "", "config", "path")
	require.NoError(t, res.err)
	assert.Equal(t, expected+" (not found, defaults in use)\n", res.stdout)

	res = execute(t, "", "config", "init", "-d", "/srv/commands")
	require.NoError(t, res.err)
	assert.Equal(t, expected+"\n", res.stdout)

	cfg, err := config.LoadFrom(expected)
	require.NoError(t, err)
	assert.Equal(t, "/srv/commands", cfg.CommandsDir)
	assert.Equal(t, config.DefaultMaxFileSize, cfg.MaxFileSize)

	res = execute(t, "", "config", "path")
	require.NoError(t, res.err)
	assert.Equal(t, expected+" (found)\n", res.stdout)

	res = execute(t, "", "config", "init")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")

	res = execute(t, "", "config", "init", "--force")
	require.NoError(t, res.err)
	cfg, err = config.LoadFrom(expected)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCommandsDir, cfg.CommandsDir)
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "rapidmcp.yaml")

	res := execute(t, "", "config", "init", "--config", path)
	require.NoError(t, res.err)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestConfigInit_WritesUserConfigOverSystemFile(t *testing.T) {
	home := isolate(t)
	system := filepath.Join(home, "system", "rapidmcp", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(system), 0755))
	require.NoError(t, os.WriteFile(system, []byte("commands_dir: /etc/commands\n"), 0644))

	res := execute(t, "", "config", "path")
	require.NoError(t, res.err)
	assert.Equal(t, system+" (found)\n", res.stdout)

	res = execute(t, "", "config", "init")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), system)

	res = execute(t, "", "config", "init", "--force")
	require.NoError(t, res.err)
	user := filepath.Join(home, "rapidmcp", "config.yaml")
	assert.Equal(t, user+"\n", res.stdout)

	data, err := os.ReadFile(system)
	require.NoError(t, err)
	assert.Equal(t, "commands_dir: /etc/commands\n", string(data), "system file is left alone")

	cfg, err := config.LoadFrom(user)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCommandsDir, cfg.CommandsDir)
}

func TestServe_SymlinkedCommandOutsideDirectory(t *testing.T) {
	isolate(t)
	shared := commandsDir(t, map[string]string{"greet.yaml": greetYAML})
	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(shared, "greet.yaml"), filepath.Join(dir, "greet.yaml")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res := execute(t, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"greet"}}`+"\n", "-d", dir)
	require.NoError(t, res.err)
	assert.Equal(t, `{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"Hello!"}]}}`+"\n", res.stdout)
}

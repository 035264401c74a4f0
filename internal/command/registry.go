package command

import (
	"fmt"
	"sort"

	"rapidmcp/internal/logging"
	"rapidmcp/pkg/fileops"
)

// DefaultMaxFileSize caps the size of a single command file.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// DirError reports that the commands directory itself could not be read.
type DirError struct {
	Dir string
	Err error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("failed to read commands directory %s: %v", e.Dir, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// ParseError reports an eligible file that could not be read or does not hold
// a well-formed command.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Registry maps command names to their definitions. It is filled once at
// startup and only read afterwards, so it needs no locking.
type Registry struct {
	logger      *logging.AppLogger
	commands    map[string]*Command
	maxFileSize int64
}

// NewRegistry creates an empty registry. A maxFileSize of zero or less selects
// DefaultMaxFileSize.
func NewRegistry(logger *logging.AppLogger, maxFileSize int64) *Registry {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Registry{
		logger:      logger,
		commands:    make(map[string]*Command),
		maxFileSize: maxFileSize,
	}
}

// LoadFromDirectory loads every "*.yaml" file directly inside dir.
//
// Files are processed in lexical order of their names, so when two files
// declare the same command name the one whose filename sorts last wins. Other
// extensions and subdirectories are ignored. The first failing file aborts the
// load with a *ParseError; an unreadable directory yields a *DirError.
func (r *Registry) LoadFromDirectory(dir string) error {
	scanner, err := fileops.NewDirectoryScanner(dir, &fileops.DirectoryScanOptions{
		IncludeHidden:  true,
		FileFilter:     IsCommandFile,
		FollowSymlinks: true,
	})
	if err != nil {
		return &DirError{Dir: dir, Err: err}
	}
	defer scanner.Close()

	files, err := scanner.ScanDirectory()
	if err != nil {
		return &DirError{Dir: dir, Err: err}
	}

	r.logger.Debug("Scanning commands directory", "dir", scanner.Root(), "candidates", len(files))

	for _, file := range files {
		data, err := scanner.ReadFile(file.Name, r.maxFileSize)
		if err != nil {
			return &ParseError{File: file.Path, Err: err}
		}

		cmd, err := Parse(data)
		if err != nil {
			return &ParseError{File: file.Path, Err: err}
		}

		if previous, exists := r.commands[cmd.Name]; exists {
			r.logger.Warn("Command redefined, later file wins", "name", cmd.Name, "previousVersion", previous.Version, "file", file.Path)
		}

		r.commands[cmd.Name] = cmd
		r.logger.Infof("Loaded command: %s", cmd.Name)
		r.logger.Debug("Command details",
			"file", file.Path,
			"symlink", file.IsSymlink(),
			"version", cmd.Version,
			"parameters", len(cmd.Parameters),
		)
	}

	return nil
}

// Get returns the command registered under name.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all commands sorted by name. The slice is a fresh copy; the
// commands themselves are shared and must not be modified.
func (r *Registry) List() []*Command {
	list := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}

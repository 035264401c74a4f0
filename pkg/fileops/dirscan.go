package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DirectoryScanOptions configures the behavior of directory scanning operations.
type DirectoryScanOptions struct {
	// IncludeHidden determines whether to include files that start with '.'
	IncludeHidden bool

	// FileFilter is an optional function that determines whether a file should be included.
	// If nil, all files are included.
	FileFilter func(filename string) bool

	// FollowSymlinks lets ScanDirectory and ReadFile resolve symlinks whose
	// target lies outside the scan root. Entry names are still confined to the
	// root itself.
	FollowSymlinks bool
}

// FileInfo represents information about a discovered file during directory scanning.
type FileInfo struct {
	// Name is the base filename
	Name string

	// Path is the scan root joined with Name
	Path string

	// Size is the file size in bytes as reported by lstat
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// Mode contains the file mode and permission bits
	Mode os.FileMode
}

// IsSymlink reports whether the entry itself is a symbolic link.
func (f FileInfo) IsSymlink() bool {
	return f.Mode&os.ModeSymlink != 0
}

// SecureDirectoryScanner lists and reads the files of a single directory.
//
// The scanner operates within a security boundary defined by an os.Root,
// preventing access to files outside the designated scan area.
type SecureDirectoryScanner struct {
	// root defines the security boundary for scanning operations
	root *os.Root

	// opts contains the scanning configuration
	opts *DirectoryScanOptions

	// scanRoot stores the path the scanner was opened on, as given by the caller
	scanRoot string
}

// NewDirectoryScanner creates a new secure directory scanner for the given path.
//
// Parameters:
//   - scanPath: The directory path to scan (can be relative or absolute, "~/" is expanded)
//   - opts: Scanning options (if nil, sensible defaults are used)
//
// Returns:
//   - *SecureDirectoryScanner: Configured scanner instance
//   - error: The path is empty, missing, not a directory, or cannot be opened
func NewDirectoryScanner(scanPath string, opts *DirectoryScanOptions) (*SecureDirectoryScanner, error) {
	if opts == nil {
		opts = getDefaultScanOptions()
	}

	if strings.TrimSpace(scanPath) == "" {
		return nil, fmt.Errorf("scan path cannot be empty")
	}

	expandedPath := ExpandPath(scanPath)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan path is not a directory: %s", expandedPath)
	}

	root, err := os.OpenRoot(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create secure scan root: %w", err)
	}

	return &SecureDirectoryScanner{
		root:     root,
		opts:     opts,
		scanRoot: expandedPath,
	}, nil
}

// getDefaultScanOptions returns sensible default scanning options.
func getDefaultScanOptions() *DirectoryScanOptions {
	return &DirectoryScanOptions{
		IncludeHidden:  true,
		FileFilter:     nil, // Include all files by default
		FollowSymlinks: false,
	}
}

// Close releases resources associated with the scanner.
func (s *SecureDirectoryScanner) Close() error {
	if s.root != nil {
		err := s.root.Close()
		s.root = nil
		return err
	}
	return nil
}

// Root returns the directory the scanner was opened on.
func (s *SecureDirectoryScanner) Root() string {
	return s.scanRoot
}

// ScanDirectory lists the files directly inside the scan root, sorted by name.
//
// Directories, and symlinks that resolve to directories, are left out. Unless
// FollowSymlinks is set, a symlink whose target cannot be resolved inside the
// root is still reported so that a later ReadFile fails on it with a precise
// error.
func (s *SecureDirectoryScanner) ScanDirectory() ([]FileInfo, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner has been closed")
	}

	dir, err := s.root.Open(".")
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", s.scanRoot, err)
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", s.scanRoot, err)
	}

	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	results := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !s.shouldIncludeFile(entry.Name()) {
			continue
		}

		if entry.Type()&os.ModeSymlink != 0 {
			if target, err := s.statTarget(entry.Name()); err == nil && target.IsDir() {
				continue
			}
		}

		fileInfo, err := s.createFileInfo(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", entry.Name(), err)
		}
		results = append(results, fileInfo)
	}

	return results, nil
}

// ReadFile reads a file inside the scan root.
//
// maxSize bounds the number of bytes read; zero or a negative value disables the
// check. Names containing path separators are rejected. Without FollowSymlinks
// the file is opened through the root, so symlinks escaping it fail as well.
func (s *SecureDirectoryScanner) ReadFile(name string, maxSize int64) ([]byte, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner has been closed")
	}

	f, err := s.open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", name)
	}
	if err := checkSizeLimit(info.Size(), maxSize); err != nil {
		return nil, err
	}

	var r io.Reader = f
	if maxSize > 0 {
		// Guards against files that grow between Stat and Read.
		r = io.LimitReader(f, maxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := checkSizeLimit(int64(len(data)), maxSize); err != nil {
		return nil, err
	}

	return data, nil
}

// open opens a direct entry of the scan root. With FollowSymlinks the entry is
// opened by its joined path so that its symlink target may live anywhere.
func (s *SecureDirectoryScanner) open(name string) (*os.File, error) {
	if !s.opts.FollowSymlinks {
		return s.root.Open(name)
	}
	if err := checkEntryName(name); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.scanRoot, name))
}

func (s *SecureDirectoryScanner) statTarget(name string) (os.FileInfo, error) {
	if !s.opts.FollowSymlinks {
		return s.root.Stat(name)
	}
	return os.Stat(filepath.Join(s.scanRoot, name))
}

// checkEntryName rejects names that do not denote a direct entry of a directory.
func checkEntryName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid entry name: %q", name)
	}
	return nil
}

// shouldIncludeFile determines if a file should be included based on configured rules.
func (s *SecureDirectoryScanner) shouldIncludeFile(fileName string) bool {
	if !s.opts.IncludeHidden && strings.HasPrefix(fileName, ".") {
		return false
	}

	if s.opts.FileFilter != nil {
		return s.opts.FileFilter(fileName)
	}

	return true
}

// createFileInfo creates a FileInfo struct from directory entry information.
func (s *SecureDirectoryScanner) createFileInfo(entry os.DirEntry) (FileInfo, error) {
	info, err := entry.Info()
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return FileInfo{
		Name:    entry.Name(),
		Path:    filepath.Join(s.scanRoot, entry.Name()),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}, nil
}

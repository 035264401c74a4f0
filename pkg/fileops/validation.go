package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a path that starts with "~/" to the user's home directory.
// Any other path is returned unchanged.
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/commands")
//	// On Unix: "/home/user/commands"
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if home directory unavailable
	}

	return filepath.Join(home, path[2:])
}

// ValidateFileSizeLimit checks if a file size is within acceptable limits.
// This function helps prevent memory exhaustion from very large files.
//
// Usage example:
//
//	// Limit to 1MB
//	err := fileops.ValidateFileSizeLimit("/path/to/config.yaml", 1024*1024)
func ValidateFileSizeLimit(filePath string, maxSize int64) error {
	if maxSize <= 0 {
		return fmt.Errorf("invalid size limit: %d", maxSize)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filepath.Base(filePath))
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	return checkSizeLimit(fileInfo.Size(), maxSize)
}

func checkSizeLimit(size, maxSize int64) error {
	if maxSize > 0 && size > maxSize {
		return fmt.Errorf("file size %d bytes exceeds limit %d bytes", size, maxSize)
	}
	return nil
}

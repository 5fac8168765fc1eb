// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: artifacts are meant to be opened by viewers
)

// ErrEmptyPath indicates an empty path was given where a file is required.
var ErrEmptyPath = errors.New("path cannot be empty")

// WriteFile writes data to path, creating missing parent directories and
// truncating any existing file.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return ErrEmptyPath
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	// #nosec G306 -- generated HTML and PNG are meant to be world-readable
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return err
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// FileURL returns the file:// URL of path, resolved to an absolute path.
// Windows drive paths gain a leading slash ("file:///C:/docs/a.html").
func FileURL(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	u := url.URL{Scheme: "file", Path: p}
	return u.String(), nil
}

package fileutil

import (
	"os"
	"path/filepath"

	"github.com/harness/pomwatch/util/common/errors"
)

// validatePath checks that path is set and that its parent directory exists.
func validatePath(path string) error {
	if path == "" {
		return errors.NewValidationError("path", "path cannot be empty")
	}

	parent := filepath.Dir(path)
	if parent != "." {
		info, err := os.Stat(parent)
		if err != nil {
			return errors.NewFileError(parent, "access", err)
		}
		if !info.IsDir() {
			return errors.NewValidationError("path", parent+" is not a directory")
		}
	}
	return nil
}

// ReadFile reads the entire file and returns its contents.
func ReadFile(path string) ([]byte, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewFileError(path, "stat", err)
	}
	if info.IsDir() {
		return nil, errors.NewValidationError("path", "path is a directory, expected a file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewFileError(path, "read", err)
	}
	return data, nil
}

// WriteFile replaces the contents of path with data. A new file is created
// with mode 0644; the parent directory must already exist.
func WriteFile(path string, data []byte) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if IsDir(path) {
		return errors.NewValidationError("path", "path is a directory, expected a file")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewFileError(path, "write", err)
	}
	return nil
}

// IsDir checks if the path is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Package files holds path handling shared by the preset sources and the
// report writers.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// ValidatePath checks that path names an existing regular file.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path stat error: %w", err)
	}
	switch {
	case info.IsDir():
		return fmt.Errorf("path %q is a directory, not a file", path)
	case !info.Mode().IsRegular():
		return fmt.Errorf("path %q is not a regular file", path)
	}
	return nil
}

// CreateFolderIfNotExists creates folder and its parents when missing.
func CreateFolderIfNotExists(folder string) error {
	info, err := os.Stat(folder)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(folder, os.ModePerm); err != nil {
			return fmt.Errorf("unable to create folder %q: %w", folder, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to check folder %q: %w", folder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q exists and is not a folder", folder)
	}
	return nil
}

// DetermineFileFullPath resolves a report output path to a file and its
// folder. Existing folders, and missing paths without an extension, are
// treated as folders and get defaultName appended.
func DetermineFileFullPath(path, defaultName string) (string, string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", "", err
	}

	info, err := os.Stat(expanded)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(expanded, defaultName), expanded, nil
	case err == nil:
		return expanded, filepath.Dir(expanded), nil
	case !os.IsNotExist(err):
		return "", "", fmt.Errorf("failed to inspect output path %q: %w", expanded, err)
	case filepath.Ext(expanded) == "":
		return filepath.Join(expanded, defaultName), expanded, nil
	default:
		return expanded, filepath.Dir(expanded), nil
	}
}

// WriteFile writes data to outputFile, creating parent folders as needed.
func WriteFile(outputFile string, data []byte) error {
	if err := CreateFolderIfNotExists(filepath.Dir(outputFile)); err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed writing file %q: %w", outputFile, err)
	}
	return nil
}

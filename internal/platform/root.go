package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot recursively looks upwards for a project root indicator.
// Indicators are: a .soundtracker directory or a soundtracker.yaml file.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ".soundtracker") || hasFile(dir, ConfigFileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// ResolveRoot returns FindRoot(startDir), falling back to startDir itself
// (made absolute) when no marker exists yet.
func ResolveRoot(startDir string) (string, error) {
	if root, err := FindRoot(startDir); err == nil {
		return root, nil
	}
	return filepath.Abs(startDir)
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}

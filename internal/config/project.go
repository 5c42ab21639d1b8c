package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvProjectDir overrides project directory discovery
const EnvProjectDir = "SUBTASKS_PROJECT"

// FindProjectDir returns the directory whose .subtasks folder configures
// start. Priority order:
//  1. SUBTASKS_PROJECT environment variable (if set)
//  2. The nearest of start and its parents holding a .subtasks directory
//  3. start itself
func FindProjectDir(start string) (string, error) {
	if dir := os.Getenv(EnvProjectDir); dir != "" {
		return dir, nil
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	current := abs
	for {
		info, err := os.Stat(filepath.Join(current, DirName))
		if err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return abs, nil
}

// Load reads the configuration that applies to start: the file at
// explicitPath when given, otherwise the project configuration found by
// FindProjectDir
func Load(start, explicitPath string) (*Config, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", explicitPath, err)
		}
		return LoadConfig(explicitPath)
	}

	dir, err := FindProjectDir(start)
	if err != nil {
		return nil, err
	}
	return LoadConfigFromDir(dir)
}

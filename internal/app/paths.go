package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "maxout"
	configFileName = "maxout.yaml"
	logFileName    = "maxout"
)

// UserConfigPath is the per-user config file, e.g.
// ~/.config/maxout/maxout.yaml on Linux.
func UserConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, configFileName), nil
}

// DefaultLogPath is the rotated log file used when logging to a file is
// enabled without a path. The ".log" suffix is added by the logger.
func DefaultLogPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, appDirName, logFileName), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

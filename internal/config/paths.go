package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rshade/carbonplan/internal/logging"
)

const (
	homeEnv     = "CARBONPLAN_HOME"
	homeDirName = ".carbonplan"
	cacheSubdir = "cache"
)

// GetConfigDir returns $CARBONPLAN_HOME, or ~/.carbonplan when unset.
func GetConfigDir() (string, error) {
	if home := os.Getenv(homeEnv); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(userHome, homeDirName), nil
}

// GetCacheDir returns cache.directory of the process configuration, or the
// cache subdirectory of GetConfigDir.
func GetCacheDir() (string, error) {
	if dir := GetGlobalConfig().Cache.Directory; dir != "" {
		return dir, nil
	}
	base, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, cacheSubdir), nil
}

// LoggerConfig converts the logging section for the logging package. Debug
// forces debug level on the console, ignoring any log file.
func (lc LoggingConfig) LoggerConfig(debug bool) logging.Config {
	if debug {
		return logging.Config{Level: "debug", Format: logging.FormatConsole, Output: logging.OutputStderr}
	}
	out := logging.OutputStderr
	if lc.File != "" {
		out = logging.OutputFile
	}
	return logging.Config{Level: lc.Level, Format: lc.Format, Output: out, File: lc.File}
}

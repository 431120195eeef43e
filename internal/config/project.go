package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rshade/carbonplan/internal/logging"
)

// projectEnv names the project directory when --project-dir is not given.
const projectEnv = "CARBONPLAN_PROJECT_DIR"

// ErrNoProject is returned by FindProject when no ancestor holds a
// .carbonplan directory.
var ErrNoProject = errors.New("no .carbonplan directory found in current or parent directories")

// FindProject returns the nearest directory at or above dir that contains a
// .carbonplan directory. The global config directory never counts.
func FindProject(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	global, _ := GetConfigDir()

	for {
		candidate := filepath.Join(current, homeDirName)
		if candidate != global && isDir(candidate) {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNoProject
		}
		current = parent
	}
}

// ResolveProjectDir picks the project .carbonplan directory from, in order,
// the --project-dir value, $CARBONPLAN_PROJECT_DIR and a walk up from
// startDir. It returns an absolute path, or "" when there is no project.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	explicit := flagValue
	if explicit == "" {
		explicit = os.Getenv(projectEnv)
	}
	if explicit != "" {
		return projectDirOf(ctx, explicit)
	}
	if startDir == "" {
		return ""
	}

	root, err := FindProject(startDir)
	switch {
	case errors.Is(err, ErrNoProject):
		return ""
	case err != nil:
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("start_dir", startDir).
			Err(err).
			Msg("project discovery failed")
		return ""
	}
	return projectDirOf(ctx, root)
}

// NewWithProjectDir is New with projectDir/config.yaml merged on top and
// the environment applied last. A missing or broken overlay is skipped.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	if projectDir == "" {
		return New()
	}
	overlay := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlay); err != nil {
		return New()
	}

	cfg := New()
	if err := MergeOverlay(cfg, overlay); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Str("overlay_path", overlay).
			Err(err).
			Msg("ignoring project config")
		return New()
	}
	cfg.ApplyEnvOverrides()
	return cfg
}

// projectDirOf returns the absolute .carbonplan directory for dir, which
// may name the project root or the .carbonplan directory itself.
func projectDirOf(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().Str("component", "config").Str("dir", dir).Err(err).
			Msg("using project directory as given")
		abs = dir
	}
	if filepath.Base(abs) == homeDirName {
		return abs
	}
	return filepath.Join(abs, homeDirName)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

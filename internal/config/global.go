package config

import (
	"context"
	"sync"
)

// process holds the configuration shared by one CLI invocation.
//
//nolint:gochecknoglobals // One configuration per process.
var process struct {
	mu         sync.RWMutex
	cfg        *Config
	projectDir string
}

// GetGlobalConfig returns the process configuration, loading it with New on
// first use.
func GetGlobalConfig() *Config {
	process.mu.RLock()
	cfg := process.cfg
	process.mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	process.mu.Lock()
	defer process.mu.Unlock()
	if process.cfg == nil {
		process.cfg = New()
	}
	return process.cfg
}

// SetGlobalConfig replaces the process configuration. The CLI installs the
// result of --config and the project overlay with it.
func SetGlobalConfig(cfg *Config) {
	process.mu.Lock()
	defer process.mu.Unlock()
	process.cfg = cfg
}

// InitGlobalConfigWithProject loads the global file overlaid with
// projectDir/config.yaml and installs it.
func InitGlobalConfigWithProject(ctx context.Context, projectDir string) {
	SetGlobalConfig(NewWithProjectDir(ctx, projectDir))
}

// ResetGlobalConfigForTest forgets the process configuration and project
// directory.
func ResetGlobalConfigForTest() {
	process.mu.Lock()
	defer process.mu.Unlock()
	process.cfg = nil
	process.projectDir = ""
}

// SetResolvedProjectDir records the .carbonplan directory in use.
func SetResolvedProjectDir(dir string) {
	process.mu.Lock()
	defer process.mu.Unlock()
	process.projectDir = dir
}

// GetResolvedProjectDir returns the directory recorded by SetResolvedProjectDir.
func GetResolvedProjectDir() string {
	process.mu.RLock()
	defer process.mu.RUnlock()
	return process.projectDir
}

// GetDefaultOutputFormat returns output.default_format of the process
// configuration.
func GetDefaultOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

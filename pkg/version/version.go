// Package version exposes build metadata injected with -ldflags.
package version

import "runtime"

// Set at build time:
//
//	-X github.com/rshade/carbonplan/pkg/version.version=v1.2.3
//
//nolint:gochecknoglobals // ldflags targets.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// GetGoVersion returns the Go toolchain version.
func GetGoVersion() string {
	return runtime.Version()
}

// Package version holds build-time version information, injected with
// -ldflags at build time.
package version

var (
	// Version is the semantic version of this build.
	Version = "dev"
	// GitCommit is the short commit hash of this build.
	GitCommit = "unknown"
)

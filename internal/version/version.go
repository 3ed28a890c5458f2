// Package version holds build metadata set with -ldflags, for example
//
//	-X github.com/rmitchellscott/monodither/internal/version.Version=1.2.0
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0"
	BuildTime = "development"
	GitCommit = "unknown"
)

// String returns the version prefixed with "v", plus the short commit when known.
func String() string {
	if GitCommit == "unknown" || GitCommit == "" {
		return fmt.Sprintf("v%s", Version)
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("v%s (%s)", Version, commit)
}

// Get returns build information for the version endpoint.
func Get() map[string]string {
	return map[string]string{
		"version":   Version,
		"buildTime": BuildTime,
		"gitCommit": GitCommit,
		"goVersion": runtime.Version(),
	}
}

package nuformats

import (
	"runtime"
	"strings"

	"github.com/blang/semver/v4"
)

// Version is the semantic version of the nuformats library.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// SemVer returns Version parsed as a semantic version. A leading "v" is accepted.
func SemVer() (semver.Version, error) {
	return semver.Parse(strings.TrimPrefix(strings.TrimSpace(Version), "v"))
}

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version (e.g., "0.1.0")
	Version string
	// GitCommit is the git commit hash (set via ldflags at build time)
	GitCommit string
	// BuildTime is the build timestamp (set via ldflags at build time)
	BuildTime string
	// GoVersion is the Go version used to build
	GoVersion string
}

// GetVersionInfo returns detailed version information
//
// GitCommit and BuildTime are populated at build time via -ldflags.
// If not set, they will show as "unknown".
//
// Example build command:
//
//	go build -ldflags="-X github.com/gaetschwartz/nuformats.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/gaetschwartz/nuformats.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/nufmt
func GetVersionInfo() VersionInfo {
	goVer := goVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}

	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: goVer,
	}
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

// Package version reports the server's build identity. The variables are
// set at build time with -ldflags "-X bennypowers.dev/vhls/internal/version.Version=...".
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	Version   = "dev"     // Release version, e.g. "v0.1.0"
	GitCommit = "unknown" // Commit hash
	GitTag    = "unknown" // Nearest tag
	BuildTime = "unknown" // RFC 3339 build timestamp
	GitDirty  = ""        // "dirty" when built from a modified tree
)

const shortCommitLen = 7

// BuildInfo is the full build identity, as printed by `version --verbose`.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	GitTag    string `json:"gitTag" yaml:"gitTag"`
	BuildTime string `json:"buildTime" yaml:"buildTime"`
	Dirty     bool   `json:"dirty" yaml:"dirty"`
}

// GetVersion returns the version reported to clients in serverInfo.
// Precedence: ldflags, then the module version from `go install`, then
// tag plus short commit, then "dev".
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if v := moduleVersion(); v != "" {
		return v
	}
	if v := gitVersion(); v != "" {
		return v
	}
	return "dev"
}

// GetFullVersion returns the version with the commit it was built from.
func GetFullVersion() string {
	v := GetVersion()
	if GitCommit == "unknown" {
		return v
	}
	return fmt.Sprintf("%s (commit: %s)", v, GitCommit)
}

// GetBuildInfo returns detailed build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   GetVersion(),
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
	}
}

func moduleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "(devel)" {
		return ""
	}
	return info.Main.Version
}

func gitVersion() string {
	if GitTag == "unknown" || GitCommit == "unknown" {
		return ""
	}
	v := GitTag
	short := GitCommit[:min(len(GitCommit), shortCommitLen)]
	if short != "" && !strings.HasSuffix(GitTag, short) {
		v += "-" + short
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

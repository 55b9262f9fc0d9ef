// Package misc keeps program identification set at build time.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X fstyle/misc.version=... -X fstyle/misc.gitHash=...".
var (
	appName = "fstyle"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash program was built from. When it was not
// provided at link time VCS information recorded by the toolchain is used.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

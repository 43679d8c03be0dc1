// Package version reports the can-tracetool build identity.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Set at release time:
//
//	go build -ldflags="-X github.com/muurk/cantrace/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/cantrace/internal/version.Commit=abc1234" ./cmd/can-tracetool
//
// Unset values are filled from the embedded VCS stamp, then from fallbacks.
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			v, c := fromSettings(info.Settings)
			if Version == "" {
				Version = v
			}
			if Commit == "" {
				Commit = c
			}
		}
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromSettings derives a dev version and short commit from the vcs.* build
// settings. Either result may be empty.
func fromSettings(settings []debug.BuildSetting) (version, commit string) {
	var revision, modified, stamp string
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			stamp = s.Value
		}
	}

	if revision != "" {
		commit = revision
		if len(commit) > 7 {
			commit = commit[:7]
		}
		if modified == "true" {
			commit += "-dirty"
		}
	}
	if t, err := time.Parse(time.RFC3339, stamp); err == nil {
		version = "dev-" + t.UTC().Format("20060102")
	}
	return version, commit
}

// Full returns "version (commit: hash)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

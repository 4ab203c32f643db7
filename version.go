// Package cppedit carries the release version of the cppedit module.
package cppedit

import (
	_ "embed"
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Build information injected via ldflags at release time. When empty,
// VersionString falls back to the VCS stamp of the binary.
var (
	Commit string
	Date   string
)

// Version returns the release version in SemVer form, without a leading "v".
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag of Version.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v is a SemVer 2.0.0 version.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// VersionString is Version followed by the commit and build date when either
// is known. It is what `cppedit --version` prints.
func VersionString() string {
	commit, date := buildStamp()
	switch {
	case commit == "" && date == "":
		return Version()
	case date == "":
		return fmt.Sprintf("%s (commit: %s)", Version(), commit)
	case commit == "":
		return fmt.Sprintf("%s (built: %s)", Version(), date)
	default:
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version(), commit, date)
	}
}

func buildStamp() (commit, date string) {
	commit, date = Commit, Date
	if commit == "" || date == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				switch {
				case s.Key == "vcs.revision" && commit == "":
					commit = s.Value
				case s.Key == "vcs.time" && date == "":
					date = s.Value
				}
			}
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return commit, date
}

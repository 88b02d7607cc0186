// Package version exposes the build version stamped in via -ldflags.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is overridden at build time:
//
//	go build -ldflags "-X github.com/tasknest/tasknest/internal/shared/version.Current=v1.2.0"
var Current = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	if version == "" {
		return ""
	}
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a valid semver release rather than a dev build.
func IsRelease(v string) bool {
	return semver.IsValid(Normalize(v)) && semver.Prerelease(Normalize(v)) == ""
}

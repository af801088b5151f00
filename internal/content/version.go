package content

import (
	"strings"

	"golang.org/x/mod/semver"
)

var prereleaseMarkers = []string{"alpha", "beta", "rc", "pre"}

// canonicalVersion adds the "v" prefix semver expects, so "1.2.0" and "v1.2.0" compare equal.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// ValidVersion reports whether v is a semantic version, with or without the "v" prefix.
func ValidVersion(v string) bool {
	return semver.IsValid(canonicalVersion(v))
}

// IsPrerelease reports whether v carries a prerelease marker (alpha, beta, rc, pre).
func IsPrerelease(v string) bool {
	cv := canonicalVersion(v)
	if semver.IsValid(cv) {
		return semver.Prerelease(cv) != ""
	}
	lower := strings.ToLower(v)
	for _, m := range prereleaseMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// CompareVersions returns -1, 0 or +1 by semantic version precedence.
// An invalid version is lower than any valid one; two invalid versions are equal.
func CompareVersions(a, b string) int {
	return semver.Compare(canonicalVersion(a), canonicalVersion(b))
}

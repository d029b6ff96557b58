// Package versions compares package versions as reported by composer.
package versions

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

const devPrefix = "dev-"

// IsDevVersion reports whether version names a development branch such as
// "dev-main" rather than a release.
func IsDevVersion(version string) bool {
	return strings.HasPrefix(version, devPrefix)
}

// IsNewerVersion reports whether newVersion is strictly greater than oldVersion.
//
// Development branches are never newer than anything, and nothing is newer
// than a development branch, since branches carry no ordering. Release
// versions use semantic versioning when both strings parse, and fall back to
// lexicographic string comparison otherwise.
func IsNewerVersion(newVersion, oldVersion string) bool {
	if IsDevVersion(newVersion) || IsDevVersion(oldVersion) {
		return false
	}

	newSemver, errNew := semver.NewVersion(newVersion)
	oldSemver, errOld := semver.NewVersion(oldVersion)

	if errNew != nil || errOld != nil {
		return newVersion > oldVersion
	}

	return newSemver.GreaterThan(oldSemver)
}

package advisor

import (
	"github.com/Masterminds/semver/v3"

	"github.com/Yates-Labs/automigrate/internal/manifest"
)

// ParseMajor extracts the major version of a semver string.
// Range operators are tolerated ("^8.1.0"); anything unparsable reports ok=false.
func ParseMajor(version string) (major uint64, ok bool) {
	v, err := semver.NewVersion(manifest.StripRange(version))
	if err != nil {
		return 0, false
	}
	return v.Major(), true
}

// MeetsMinimum reports whether version's major is at least minimum.
// Malformed versions never meet the minimum.
func MeetsMinimum(version string, minimum uint64) bool {
	major, ok := ParseMajor(version)
	return ok && major >= minimum
}

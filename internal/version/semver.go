package version

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/blang/semver"

	"github.com/ellemenno/loomtasks/internal/errors"
)

var semverPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// SemanticVersion is a MAJOR.MINOR.PATCH triple. The text it was parsed from
// is kept so that "01.2.3" prints back unchanged.
type SemanticVersion struct {
	Major uint64
	Minor uint64
	Patch uint64

	raw string
}

// Parse parses s as three dot-separated runs of digits. Each component must
// fit in a uint64; larger values are ErrInvalidVersion.
func Parse(s string) (SemanticVersion, error) {
	m := semverPattern.FindStringSubmatch(s)
	if m == nil {
		return SemanticVersion{}, errors.Wrapf(errors.ErrInvalidVersion, "%q is not N.N.N", s)
	}
	var parts [3]uint64
	for i := range parts {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return SemanticVersion{}, errors.Wrapf(errors.ErrInvalidVersion, "%q: component %q out of range", s, m[i+1])
		}
		parts[i] = n
	}
	return SemanticVersion{Major: parts[0], Minor: parts[1], Patch: parts[2], raw: s}, nil
}

// MustParse is like Parse but panics on error. For tests and constants.
func MustParse(s string) SemanticVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v SemanticVersion) String() string {
	if v.raw != "" {
		return v.raw
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 comparing v to o numerically.
func (v SemanticVersion) Compare(o SemanticVersion) int {
	return v.semver().Compare(o.semver())
}

// Equal reports whether v and o are numerically equal.
func (v SemanticVersion) Equal(o SemanticVersion) bool {
	return v.Compare(o) == 0
}

func (v SemanticVersion) semver() semver.Version {
	return semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// Part names a component of a SemanticVersion.
type Part string

// Bumpable parts.
const (
	Major Part = "major"
	Minor Part = "minor"
	Patch Part = "patch"
)

// ParsePart validates a part name.
func ParsePart(s string) (Part, error) {
	switch p := Part(s); p {
	case Major, Minor, Patch:
		return p, nil
	}
	return "", errors.Newf("unknown version part %q (want major, minor or patch)", s)
}

// Bump increments part and resets the lower parts to zero.
func (v SemanticVersion) Bump(part Part) (SemanticVersion, error) {
	switch part {
	case Major:
		return SemanticVersion{Major: v.Major + 1}, nil
	case Minor:
		return SemanticVersion{Major: v.Major, Minor: v.Minor + 1}, nil
	case Patch:
		return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	}
	return SemanticVersion{}, errors.Newf("unknown version part %q", part)
}

package domain

import (
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// TimestampFormat is the 14-digit wall-clock suffix used for fallback bumps.
const TimestampFormat = "20060102150405"

// BumpDirective selects the kind of version increment to apply.
type BumpDirective string

const (
	BumpMajor     BumpDirective = "major"
	BumpMinor     BumpDirective = "minor"
	BumpPatch     BumpDirective = "patch"
	BumpTimestamp BumpDirective = "timestamp"
)

// ParseDirective maps a raw directive string to a BumpDirective. Empty or
// unrecognized values fall back to the timestamp directive.
func ParseDirective(s string) BumpDirective {
	switch BumpDirective(strings.ToLower(strings.TrimSpace(s))) {
	case BumpMajor:
		return BumpMajor
	case BumpMinor:
		return BumpMinor
	case BumpPatch:
		return BumpPatch
	default:
		return BumpTimestamp
	}
}

// Bump computes the next version string from the current one.
//
// The timestamp directive replaces any existing timestamp suffix with a fresh
// one and leaves the numeric core untouched. The arithmetic directives strip
// the leading "v" and any timestamp suffix, then increment exactly one
// component; a current version that does not parse as MAJOR.MINOR.PATCH
// recovers to "v0.0.0-<timestamp>" instead of failing.
func Bump(current string, directive BumpDirective) string {
	return bumpAt(current, directive, time.Now())
}

func bumpAt(current string, directive BumpDirective, now time.Time) string {
	if directive == BumpTimestamp {
		return "v" + numericCore(current) + "-" + now.Format(TimestampFormat)
	}
	core := strings.TrimPrefix(current, "v")
	if idx := strings.IndexByte(core, '-'); idx >= 0 {
		core = core[:idx]
	}
	v, err := semver.StrictNewVersion(core)
	if err != nil {
		return "v0.0.0-" + now.Format(TimestampFormat)
	}
	var next semver.Version
	switch directive {
	case BumpMajor:
		next = v.IncMajor()
	case BumpMinor:
		next = v.IncMinor()
	default:
		// Anything else that reaches the arithmetic branch bumps patch.
		next = v.IncPatch()
	}
	return "v" + next.String()
}

// numericCore strips the leading "v" and a trailing timestamp suffix.
func numericCore(version string) string {
	core := strings.TrimPrefix(version, "v")
	if idx := strings.IndexByte(core, '-'); idx >= 0 && isTimestamp(core[idx+1:]) {
		core = core[:idx]
	}
	return core
}

func isTimestamp(s string) bool {
	if len(s) != len(TimestampFormat) {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

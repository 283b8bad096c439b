package domain

// Label names recognized on pull requests.
const (
	LabelMajor = "semver:major"
	LabelMinor = "semver:minor"
	LabelPatch = "semver:patch"
)

var labelDirectives = map[string]BumpDirective{
	LabelMajor: BumpMajor,
	LabelMinor: BumpMinor,
	LabelPatch: BumpPatch,
}

// ResolveDirective maps an ordered pull request label set to a bump
// directive. The first matching label wins; with no match the result is the
// timestamp directive.
func ResolveDirective(labels []string) BumpDirective {
	for _, name := range labels {
		if directive, ok := labelDirectives[name]; ok {
			return directive
		}
	}
	return BumpTimestamp
}

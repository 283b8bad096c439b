package domain

import "fmt"

// ReleaseRecord is the hosting platform's handle for a created release,
// opaque beyond being a key for subsequent asset uploads.
type ReleaseRecord struct {
	ID      int64
	TagName string
	Draft   bool
}

// ReleaseTitle returns the display name for a release of the given version.
func ReleaseTitle(version string) string {
	return fmt.Sprintf("Release %s", version)
}

// ReleaseBody returns the release description for the given version.
func ReleaseBody(version string) string {
	return fmt.Sprintf("Release version %s", version)
}

// SubmoduleUpdateResult is the outcome of a submodule-update run. PRNumber is
// always set on success; BestEffort holds post-PR failures that did not abort
// the workflow.
type SubmoduleUpdateResult struct {
	PRNumber   int
	BestEffort []StepFailure
}

package domain

import "errors"

// Sentinel errors classifying failures across the release pipeline.
var (
	// ErrRepositoryAccess marks non-404 failures talking to the hosting platform.
	ErrRepositoryAccess = errors.New("repository access failed")
	// ErrAssetNotFound marks a release asset missing from the local filesystem.
	ErrAssetNotFound = errors.New("release asset not found")
	// ErrUploadFailed marks a transport or platform failure uploading an asset.
	ErrUploadFailed = errors.New("asset upload failed")
	// ErrMalformedVersion marks a version string that is not vMAJOR.MINOR.PATCH.
	ErrMalformedVersion = errors.New("malformed version")
)

// StepFailure records a recovered best-effort step failure. Fatal failures
// are returned as plain errors and abort the run; best-effort ones are
// collected alongside a successful result.
type StepFailure struct {
	Step string
	Err  error
}

func (f StepFailure) Error() string {
	return "best-effort step " + f.Step + " failed: " + f.Err.Error()
}

func (f StepFailure) Unwrap() error {
	return f.Err
}

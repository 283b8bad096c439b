package repository

import (
	"context"

	"github.com/buildops/releasebot/internal/domain"
)

// GithubRepository defines the release operations the pipeline needs from the
// hosting platform.

type GithubRepository interface {
	// LatestVersion returns the tag of the most recent release, or v0.0.0
	// when the repository has no releases yet.
	LatestVersion(ctx context.Context) (string, error)
	// PullRequestLabels returns the ordered label names of a pull request.
	PullRequestLabels(ctx context.Context, number int) ([]string, error)
	// ResolvePRFromCommit finds the pull request that introduced a commit.
	ResolvePRFromCommit(ctx context.Context, sha string) (int, error)
	// CreateRelease creates a release entry for the given version.
	CreateRelease(ctx context.Context, version string, draft bool) (*domain.ReleaseRecord, error)
	// UploadReleaseAsset attaches a local file to an existing release.
	UploadReleaseAsset(ctx context.Context, release *domain.ReleaseRecord, filePath, fileName string) error
}

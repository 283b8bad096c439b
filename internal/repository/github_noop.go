package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildops/releasebot/internal/domain"
)

var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

type githubNoopRepository struct {
	owner string
	repo  string
}

func NewGithubNoopRepository(owner, repo string) GithubRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func NewGithubNoopExtendedRepository(owner, repo string) GithubExtendedRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func (r *githubNoopRepository) LatestVersion(_ context.Context) (string, error) {
	return "", r.operationError("get latest version")
}

func (r *githubNoopRepository) PullRequestLabels(_ context.Context, _ int) ([]string, error) {
	return nil, r.operationError("get pull request labels")
}

func (r *githubNoopRepository) ResolvePRFromCommit(_ context.Context, _ string) (int, error) {
	return 0, r.operationError("resolve pull request from commit")
}

func (r *githubNoopRepository) CreateRelease(
	_ context.Context,
	_ string,
	_ bool,
) (*domain.ReleaseRecord, error) {
	return nil, r.operationError("create release")
}

func (r *githubNoopRepository) UploadReleaseAsset(
	_ context.Context,
	_ *domain.ReleaseRecord,
	_, _ string,
) error {
	return r.operationError("upload release asset")
}

func (r *githubNoopRepository) CreatePullRequest(
	_ context.Context,
	_, _, _, _, _ string,
) (int, error) {
	return 0, r.operationError("create pull request")
}

func (r *githubNoopRepository) AddLabelsToPR(_ context.Context, _ string, _ int, _ []string) error {
	return r.operationError("add labels")
}

func (r *githubNoopRepository) MergePullRequest(_ context.Context, _ string, _ int, _, _ string) error {
	return r.operationError("merge pull request")
}

func (r *githubNoopRepository) operationError(action string) error {
	return fmt.Errorf("%w: unable to %s for %s/%s", ErrGithubTokenRequired, action, r.owner, r.repo)
}

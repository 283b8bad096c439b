package repository

import "context"

// GithubExtendedRepository extends GithubRepository with the pull request
// operations the submodule workflow runs against a parent repository owned by
// the same account.
type GithubExtendedRepository interface {
	GithubRepository
	// CreatePullRequest opens a PR in the given repository and returns its number.
	CreatePullRequest(ctx context.Context, repo, title, body, head, base string) (int, error)
	// AddLabelsToPR attaches labels to an existing PR
	AddLabelsToPR(ctx context.Context, repo string, number int, labels []string) error
	// MergePullRequest merges a PR using a merge commit with the given title and message.
	MergePullRequest(ctx context.Context, repo string, number int, commitTitle, commitMessage string) error
}

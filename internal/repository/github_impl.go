package repository

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/buildops/releasebot/internal/config"
	"github.com/buildops/releasebot/internal/domain"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the GithubRepository and
// GithubExtendedRepository interfaces.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new GithubRepository with validation.
func NewGithubRepository(token, owner, repo string) (GithubRepository, error) {
	return newGithubRepository(token, owner, repo)
}

// NewGithubExtendedRepository creates a new GithubExtendedRepository with validation.
func NewGithubExtendedRepository(token, owner, repo string) (GithubExtendedRepository, error) {
	return newGithubRepository(token, owner, repo)
}

func newGithubRepository(token, owner, repo string) (*githubRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubRepository{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// newGithubRepositoryWithClient wires a prebuilt client, used by tests.
func newGithubRepositoryWithClient(client *github.Client, owner, repo string) *githubRepository {
	return &githubRepository{client: client, owner: owner, repo: repo}
}

// LatestVersion returns the tag of the most recent release. A repository with
// no releases yet reports 404, which maps to v0.0.0 rather than an error.
func (r *githubRepository) LatestVersion(ctx context.Context) (string, error) {
	release, resp, err := r.client.Repositories.GetLatestRelease(ctx, r.owner, r.repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "v0.0.0", nil
		}
		return "", fmt.Errorf("%w: failed to get latest release for %s/%s: %v",
			domain.ErrRepositoryAccess, r.owner, r.repo, err)
	}
	return release.GetTagName(), nil
}

// PullRequestLabels fetches a pull request and returns its label names in order.
func (r *githubRepository) PullRequestLabels(ctx context.Context, number int) ([]string, error) {
	pr, _, err := r.client.PullRequests.Get(ctx, r.owner, r.repo, number)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get PR #%d: %v", domain.ErrRepositoryAccess, number, err)
	}
	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}
	return labels, nil
}

// mergeCommitPatterns matches the PR reference in common merge commit titles.
var mergeCommitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Merge pull request #(\d+)`),
	regexp.MustCompile(`Pull request #(\d+)`),
	regexp.MustCompile(`#(\d+) from`),
	regexp.MustCompile(`PR-(\d+)`),
}

// ResolvePRFromCommit finds the pull request that introduced a commit. The
// commit-pulls listing is authoritative; when it comes back empty the commit
// message is matched against the usual merge title patterns.
func (r *githubRepository) ResolvePRFromCommit(ctx context.Context, sha string) (int, error) {
	prs, _, err := r.client.PullRequests.ListPullRequestsWithCommit(ctx, r.owner, r.repo, sha, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to list pull requests for commit %s: %v",
			domain.ErrRepositoryAccess, sha, err)
	}
	if len(prs) > 0 {
		return prs[0].GetNumber(), nil
	}
	commit, _, err := r.client.Repositories.GetCommit(ctx, r.owner, r.repo, sha, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get commit %s: %v", domain.ErrRepositoryAccess, sha, err)
	}
	message := commit.GetCommit().GetMessage()
	for _, pattern := range mergeCommitPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			number, convErr := strconv.Atoi(m[1])
			if convErr != nil {
				continue
			}
			return number, nil
		}
	}
	return 0, fmt.Errorf("no pull request found for commit %s", sha)
}

// CreateRelease creates a release entry for the given version tag.
func (r *githubRepository) CreateRelease(
	ctx context.Context,
	version string,
	draft bool,
) (*domain.ReleaseRecord, error) {
	release, _, err := r.client.Repositories.CreateRelease(ctx, r.owner, r.repo, &github.RepositoryRelease{
		TagName:    github.Ptr(version),
		Name:       github.Ptr(domain.ReleaseTitle(version)),
		Body:       github.Ptr(domain.ReleaseBody(version)),
		Draft:      github.Ptr(draft),
		Prerelease: github.Ptr(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create release %s: %w", version, err)
	}
	return &domain.ReleaseRecord{
		ID:      release.GetID(),
		TagName: version,
		Draft:   draft,
	}, nil
}

// UploadReleaseAsset attaches a local gzip artifact to a release.
func (r *githubRepository) UploadReleaseAsset(
	ctx context.Context,
	release *domain.ReleaseRecord,
	filePath, fileName string,
) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrAssetNotFound, filePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %v", domain.ErrAssetNotFound, filePath, err)
	}
	defer file.Close()
	_, _, err = r.client.Repositories.UploadReleaseAsset(ctx, r.owner, r.repo, release.ID, &github.UploadOptions{
		Name:      fileName,
		MediaType: "application/gzip",
	}, file)
	if err != nil {
		return fmt.Errorf("%w: %s to release %d: %v", domain.ErrUploadFailed, fileName, release.ID, err)
	}
	return nil
}

// CreatePullRequest opens a PR in the given repository under the same owner.
func (r *githubRepository) CreatePullRequest(
	ctx context.Context,
	repo, title, body, head, base string,
) (int, error) {
	pr, _, err := r.client.PullRequests.Create(ctx, r.owner, repo, &github.NewPullRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
		Head:  github.Ptr(head),
		Base:  github.Ptr(base),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create pull request in %s/%s: %w", r.owner, repo, err)
	}
	return pr.GetNumber(), nil
}

// AddLabelsToPR attaches labels to an existing PR.
func (r *githubRepository) AddLabelsToPR(ctx context.Context, repo string, number int, labels []string) error {
	_, _, err := r.client.Issues.AddLabelsToIssue(ctx, r.owner, repo, number, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels to PR #%d: %w", number, err)
	}
	return nil
}

// MergePullRequest merges a PR with a merge commit.
func (r *githubRepository) MergePullRequest(
	ctx context.Context,
	repo string,
	number int,
	commitTitle, commitMessage string,
) error {
	_, _, err := r.client.PullRequests.Merge(ctx, r.owner, repo, number, commitMessage, &github.PullRequestOptions{
		MergeMethod: "merge",
		CommitTitle: commitTitle,
	})
	if err != nil {
		return fmt.Errorf("failed to merge PR #%d: %w", number, err)
	}
	return nil
}

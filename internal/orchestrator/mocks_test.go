package orchestrator

import (
	"context"

	"github.com/buildops/releasebot/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GitExtendedRepository
type mockGitExtendedRepository struct{ mock.Mock }

func (m *mockGitExtendedRepository) Clone(ctx context.Context, url, dir string) error {
	args := m.Called(ctx, url, dir)
	return args.Error(0)
}

func (m *mockGitExtendedRepository) ConfigureUser(ctx context.Context, name, email string) error {
	args := m.Called(ctx, name, email)
	return args.Error(0)
}

func (m *mockGitExtendedRepository) CreateBranch(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockGitExtendedRepository) AddPath(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *mockGitExtendedRepository) Commit(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *mockGitExtendedRepository) PushBranch(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockGitExtendedRepository) HeadCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitExtendedRepository) SubmoduleInit(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *mockGitExtendedRepository) SubmoduleUpdate(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *mockGitExtendedRepository) SubmoduleAdd(ctx context.Context, url, path string) error {
	args := m.Called(ctx, url, path)
	return args.Error(0)
}

func (m *mockGitExtendedRepository) SubmoduleRegistered(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *mockGitExtendedRepository) SubmoduleHead(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *mockGitExtendedRepository) SubmoduleFetch(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *mockGitExtendedRepository) SubmoduleCheckout(ctx context.Context, path, ref string) error {
	args := m.Called(ctx, path, ref)
	return args.Error(0)
}

// Mock for GithubExtendedRepository
type mockGithubExtendedRepository struct{ mock.Mock }

func (m *mockGithubExtendedRepository) LatestVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGithubExtendedRepository) PullRequestLabels(ctx context.Context, number int) ([]string, error) {
	args := m.Called(ctx, number)
	if labels := args.Get(0); labels != nil {
		return labels.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGithubExtendedRepository) ResolvePRFromCommit(ctx context.Context, sha string) (int, error) {
	args := m.Called(ctx, sha)
	return args.Int(0), args.Error(1)
}

func (m *mockGithubExtendedRepository) CreateRelease(
	ctx context.Context,
	version string,
	draft bool,
) (*domain.ReleaseRecord, error) {
	args := m.Called(ctx, version, draft)
	if record := args.Get(0); record != nil {
		return record.(*domain.ReleaseRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGithubExtendedRepository) UploadReleaseAsset(
	ctx context.Context,
	release *domain.ReleaseRecord,
	filePath, fileName string,
) error {
	args := m.Called(ctx, release, filePath, fileName)
	return args.Error(0)
}

func (m *mockGithubExtendedRepository) CreatePullRequest(
	ctx context.Context,
	repo, title, body, head, base string,
) (int, error) {
	args := m.Called(ctx, repo, title, body, head, base)
	return args.Int(0), args.Error(1)
}

func (m *mockGithubExtendedRepository) AddLabelsToPR(
	ctx context.Context,
	repo string,
	number int,
	labels []string,
) error {
	args := m.Called(ctx, repo, number, labels)
	return args.Error(0)
}

func (m *mockGithubExtendedRepository) MergePullRequest(
	ctx context.Context,
	repo string,
	number int,
	commitTitle, commitMessage string,
) error {
	args := m.Called(ctx, repo, number, commitTitle, commitMessage)
	return args.Error(0)
}

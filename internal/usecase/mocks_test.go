package usecase

import (
	"context"

	"github.com/buildops/releasebot/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) LatestVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGithubRepository) PullRequestLabels(ctx context.Context, number int) ([]string, error) {
	args := m.Called(ctx, number)
	if labels := args.Get(0); labels != nil {
		return labels.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGithubRepository) ResolvePRFromCommit(ctx context.Context, sha string) (int, error) {
	args := m.Called(ctx, sha)
	return args.Int(0), args.Error(1)
}

func (m *mockGithubRepository) CreateRelease(
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

func (m *mockGithubRepository) UploadReleaseAsset(
	ctx context.Context,
	release *domain.ReleaseRecord,
	filePath, fileName string,
) error {
	args := m.Called(ctx, release, filePath, fileName)
	return args.Error(0)
}

// Mock for VersionFileRepository
type mockVersionFileRepository struct{ mock.Mock }

func (m *mockVersionFileRepository) Read(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *mockVersionFileRepository) Write(ctx context.Context, name, version string) error {
	args := m.Called(ctx, name, version)
	return args.Error(0)
}

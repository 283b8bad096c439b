package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/buildops/releasebot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchLatestVersionUseCase_Execute(t *testing.T) {
	t.Run("Should fetch and persist the latest version", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		files := new(mockVersionFileRepository)
		uc := &FetchLatestVersionUseCase{GithubRepo: ghRepo, VersionFiles: files, Log: zap.NewNop()}
		ctx := context.Background()
		ghRepo.On("LatestVersion", ctx).Return("v1.4.0", nil)
		files.On("Write", ctx, repository.CurrentVersionFile, "v1.4.0").Return(nil)
		version, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "v1.4.0", version)
		ghRepo.AssertExpectations(t)
		files.AssertExpectations(t)
	})
	t.Run("Should persist v0.0.0 for a repository without releases", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		files := new(mockVersionFileRepository)
		uc := &FetchLatestVersionUseCase{GithubRepo: ghRepo, VersionFiles: files, Log: zap.NewNop()}
		ctx := context.Background()
		ghRepo.On("LatestVersion", ctx).Return("v0.0.0", nil)
		files.On("Write", ctx, repository.CurrentVersionFile, "v0.0.0").Return(nil)
		version, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "v0.0.0", version)
	})
	t.Run("Should propagate repository access errors", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		files := new(mockVersionFileRepository)
		uc := &FetchLatestVersionUseCase{GithubRepo: ghRepo, VersionFiles: files, Log: zap.NewNop()}
		ctx := context.Background()
		ghRepo.On("LatestVersion", ctx).Return("", errors.New("api down"))
		_, err := uc.Execute(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get latest version")
	})
}

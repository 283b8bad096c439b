package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/buildops/releasebot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishReleaseUseCase_Execute(t *testing.T) {
	t.Run("Should create a release and upload the asset", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		uc := &PublishReleaseUseCase{GithubRepo: ghRepo, Log: zap.NewNop()}
		ctx := context.Background()
		record := &domain.ReleaseRecord{ID: 42, TagName: "v1.3.0", Draft: true}
		ghRepo.On("CreateRelease", ctx, "v1.3.0", true).Return(record, nil)
		ghRepo.On("UploadReleaseAsset", ctx, record, "dist/release.tar.gz", "release.tar.gz").Return(nil)
		got, err := uc.Execute(ctx, PublishReleaseInput{
			Version:   "v1.3.0",
			Draft:     true,
			AssetPath: "dist/release.tar.gz",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)
		ghRepo.AssertExpectations(t)
	})
	t.Run("Should skip the asset upload when requested", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		uc := &PublishReleaseUseCase{GithubRepo: ghRepo, Log: zap.NewNop()}
		ctx := context.Background()
		record := &domain.ReleaseRecord{ID: 7, TagName: "v1.3.0", Draft: false}
		ghRepo.On("CreateRelease", ctx, "v1.3.0", false).Return(record, nil)
		got, err := uc.Execute(ctx, PublishReleaseInput{Version: "v1.3.0", SkipAsset: true})
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		ghRepo.AssertNotCalled(t, "UploadReleaseAsset")
	})
	t.Run("Should fail without a record when the release cannot be created", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		uc := &PublishReleaseUseCase{GithubRepo: ghRepo, Log: zap.NewNop()}
		ctx := context.Background()
		ghRepo.On("CreateRelease", ctx, "v1.3.0", true).Return(nil, errors.New("boom"))
		got, err := uc.Execute(ctx, PublishReleaseInput{Version: "v1.3.0", Draft: true})
		assert.Nil(t, got)
		assert.ErrorContains(t, err, "failed to create release")
	})
	t.Run("Should return the record alongside an asset upload failure", func(t *testing.T) {
		ghRepo := new(mockGithubRepository)
		uc := &PublishReleaseUseCase{GithubRepo: ghRepo, Log: zap.NewNop()}
		ctx := context.Background()
		record := &domain.ReleaseRecord{ID: 42, TagName: "v1.3.0", Draft: true}
		ghRepo.On("CreateRelease", ctx, "v1.3.0", true).Return(record, nil)
		ghRepo.On("UploadReleaseAsset", ctx, record, "release.tar.gz", "release.tar.gz").
			Return(domain.ErrUploadFailed)
		got, err := uc.Execute(ctx, PublishReleaseInput{
			Version:   "v1.3.0",
			Draft:     true,
			AssetPath: "release.tar.gz",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUploadFailed)
		require.NotNil(t, got)
		assert.Equal(t, int64(42), got.ID)
	})
}

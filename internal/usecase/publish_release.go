package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/buildops/releasebot/internal/domain"
	"github.com/buildops/releasebot/internal/repository"
	"go.uber.org/zap"
)

// PublishReleaseUseCase contains the logic for the create-release command.

type PublishReleaseUseCase struct {
	GithubRepo repository.GithubRepository
	Log        *zap.Logger
}

// PublishReleaseInput configures a release publication.
type PublishReleaseInput struct {
	Version   string
	Draft     bool
	SkipAsset bool
	AssetPath string
}

// Execute creates the release and, unless skipped, uploads the binary asset.
// An asset failure is fatal but the already-created release record is still
// returned so the caller can report its identifier.
func (uc *PublishReleaseUseCase) Execute(
	ctx context.Context,
	in PublishReleaseInput,
) (*domain.ReleaseRecord, error) {
	record, err := uc.GithubRepo.CreateRelease(ctx, in.Version, in.Draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create release: %w", err)
	}
	uc.Log.Info("release created",
		zap.Int64("release_id", record.ID),
		zap.String("version", in.Version),
		zap.Bool("draft", in.Draft))
	if in.SkipAsset {
		return record, nil
	}
	fileName := filepath.Base(in.AssetPath)
	if err := uc.GithubRepo.UploadReleaseAsset(ctx, record, in.AssetPath, fileName); err != nil {
		return record, fmt.Errorf("failed to upload release asset: %w", err)
	}
	uc.Log.Info("release asset uploaded",
		zap.Int64("release_id", record.ID),
		zap.String("asset", fileName))
	return record, nil
}

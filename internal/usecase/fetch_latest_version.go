package usecase

import (
	"context"
	"fmt"

	"github.com/buildops/releasebot/internal/repository"
	"go.uber.org/zap"
)

// FetchLatestVersionUseCase contains the logic for the get-version command.

type FetchLatestVersionUseCase struct {
	GithubRepo   repository.GithubRepository
	VersionFiles repository.VersionFileRepository
	Log          *zap.Logger
}

// Execute fetches the latest released version and hands it to the next
// pipeline stage through the current-version file. A repository without
// releases yields v0.0.0.
func (uc *FetchLatestVersionUseCase) Execute(ctx context.Context) (string, error) {
	version, err := uc.GithubRepo.LatestVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get latest version: %w", err)
	}
	if err := uc.VersionFiles.Write(ctx, repository.CurrentVersionFile, version); err != nil {
		return "", fmt.Errorf("failed to write current version file: %w", err)
	}
	uc.Log.Info("latest version written",
		zap.String("version", version),
		zap.String("file", repository.CurrentVersionFile))
	return version, nil
}

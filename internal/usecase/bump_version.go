package usecase

import (
	"context"
	"fmt"

	"github.com/buildops/releasebot/internal/domain"
	"github.com/buildops/releasebot/internal/repository"
	"go.uber.org/zap"
)

// BumpVersionUseCase contains the logic for the bump-version command.

type BumpVersionUseCase struct {
	VersionFiles repository.VersionFileRepository
	Log          *zap.Logger
}

// Execute reads the current version from the pipeline handoff file (falling
// back to the caller-supplied value when the file is absent), computes the
// next version, and writes it for the following stage.
func (uc *BumpVersionUseCase) Execute(
	ctx context.Context,
	fallbackCurrent string,
	directive domain.BumpDirective,
) (string, error) {
	current, err := uc.VersionFiles.Read(ctx, repository.CurrentVersionFile)
	if err != nil {
		if fallbackCurrent == "" {
			return "", fmt.Errorf("current version unavailable: %w", err)
		}
		uc.Log.Warn("current version file missing, using provided value",
			zap.String("current", fallbackCurrent),
			zap.Error(err))
		current = fallbackCurrent
	}
	next := domain.Bump(current, directive)
	if err := uc.VersionFiles.Write(ctx, repository.NewVersionFile, next); err != nil {
		return "", fmt.Errorf("failed to write new version file: %w", err)
	}
	uc.Log.Info("version bumped",
		zap.String("current", current),
		zap.String("directive", string(directive)),
		zap.String("next", next))
	return next, nil
}

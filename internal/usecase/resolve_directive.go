package usecase

import (
	"context"

	"github.com/buildops/releasebot/internal/domain"
	"github.com/buildops/releasebot/internal/repository"
	"go.uber.org/zap"
)

// ResolveDirectiveUseCase determines the bump directive for a release, from
// PR labels when a PR number is known and from the caller-supplied fallback
// otherwise.

type ResolveDirectiveUseCase struct {
	GithubRepo repository.GithubRepository
	Log        *zap.Logger
}

// Execute never fails: a PR metadata fetch error is recoverable and falls
// back to the supplied directive. When no PR number is known, a merge commit
// SHA can identify the PR instead (merge pipelines only know the commit).
func (uc *ResolveDirectiveUseCase) Execute(
	ctx context.Context,
	prNumber int,
	commitSHA string,
	fallback domain.BumpDirective,
) domain.BumpDirective {
	if prNumber <= 0 && commitSHA != "" {
		number, err := uc.GithubRepo.ResolvePRFromCommit(ctx, commitSHA)
		if err != nil {
			uc.Log.Warn("could not resolve PR from commit, falling back to provided directive",
				zap.String("commit_sha", commitSHA),
				zap.String("fallback", string(fallback)),
				zap.Error(err))
		} else {
			uc.Log.Info("PR resolved from merge commit",
				zap.String("commit_sha", commitSHA),
				zap.Int("pr_number", number))
			prNumber = number
		}
	}
	if prNumber <= 0 {
		return fallback
	}
	labels, err := uc.GithubRepo.PullRequestLabels(ctx, prNumber)
	if err != nil {
		uc.Log.Warn("failed to fetch PR labels, falling back to provided directive",
			zap.Int("pr_number", prNumber),
			zap.String("fallback", string(fallback)),
			zap.Error(err))
		return fallback
	}
	directive := domain.ResolveDirective(labels)
	uc.Log.Info("directive resolved from PR labels",
		zap.Int("pr_number", prNumber),
		zap.Strings("labels", labels),
		zap.String("directive", string(directive)))
	return directive
}

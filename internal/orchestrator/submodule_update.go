package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildops/releasebot/internal/config"
	"github.com/buildops/releasebot/internal/domain"
	"github.com/buildops/releasebot/internal/repository"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// SubmoduleUpdateConfig contains configuration for a submodule update run.
type SubmoduleUpdateConfig struct {
	ParentRepo    string
	SubmodulePath string
	RepoName      string
	Version       string
}

// SubmoduleUpdateOrchestrator drives the full submodule update workflow: it
// clones the parent repository into a disposable working copy, pins the
// submodule to the released version on a dedicated branch, pushes that branch
// and opens a pull request. Labeling and merging the PR are best-effort:
// their failures are collected on the result instead of aborting the run.
type SubmoduleUpdateOrchestrator struct {
	gitRepo    repository.GitExtendedRepository
	githubRepo repository.GithubExtendedRepository
	fsRepo     repository.FileSystemRepository
	cfg        *config.Config
	log        *zap.Logger
}

// NewSubmoduleUpdateOrchestrator creates a new submodule update orchestrator.
func NewSubmoduleUpdateOrchestrator(
	gitRepo repository.GitExtendedRepository,
	githubRepo repository.GithubExtendedRepository,
	fsRepo repository.FileSystemRepository,
	cfg *config.Config,
	log *zap.Logger,
) *SubmoduleUpdateOrchestrator {
	return &SubmoduleUpdateOrchestrator{
		gitRepo:    gitRepo,
		githubRepo: githubRepo,
		fsRepo:     fsRepo,
		cfg:        cfg,
		log:        log,
	}
}

// Execute runs the complete submodule update workflow. Any failure before the
// pull request exists aborts the run; pushed branches are left in place for
// manual inspection.
func (o *SubmoduleUpdateOrchestrator) Execute(
	ctx context.Context,
	cfg SubmoduleUpdateConfig,
) (*domain.SubmoduleUpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultWorkflowTimeout)
	defer cancel()
	if err := ValidateVersion(cfg.Version); err != nil {
		return nil, fmt.Errorf("invalid version: %w", err)
	}
	plan := domain.NewSubmoduleUpdatePlan(cfg.ParentRepo, cfg.SubmodulePath, cfg.RepoName, cfg.Version)
	if err := ValidateBranchName(plan.BranchName); err != nil {
		return nil, fmt.Errorf("invalid branch name: %w", err)
	}
	workdir, err := o.cloneParent(ctx, plan)
	if err != nil {
		return nil, err
	}
	if err := o.pinSubmodule(ctx, workdir, plan); err != nil {
		return nil, err
	}
	if err := o.commitAndPush(ctx, plan); err != nil {
		return nil, err
	}
	return o.openPullRequest(ctx, plan)
}

// cloneParent clones the parent repository into a fresh disposable directory
// and configures the bot identity on the working copy.
func (o *SubmoduleUpdateOrchestrator) cloneParent(
	ctx context.Context,
	plan *domain.SubmoduleUpdatePlan,
) (string, error) {
	workdir := filepath.Join(os.TempDir(), "releasebot-"+uuid.NewString())
	cloneURL := fmt.Sprintf("https://github.com/%s/%s.git", o.cfg.GithubOwner, plan.ParentRepo)
	o.log.Info("cloning parent repository",
		zap.String("repo", plan.ParentRepo),
		zap.String("workdir", workdir))
	if err := o.gitRepo.Clone(ctx, cloneURL, workdir); err != nil {
		return "", fmt.Errorf("failed to clone parent repository: %w", err)
	}
	if err := o.gitRepo.ConfigureUser(ctx, o.cfg.GitUserName, o.cfg.GitUserEmail); err != nil {
		return "", fmt.Errorf("failed to configure git identity: %w", err)
	}
	return workdir, nil
}

// pinSubmodule brings the submodule working copy into existence (registering
// it first when the parent has never carried it) and checks out the released
// version on the update branch. The pre-update and post-update submodule
// commits are recorded on the plan.
func (o *SubmoduleUpdateOrchestrator) pinSubmodule(
	ctx context.Context,
	workdir string,
	plan *domain.SubmoduleUpdatePlan,
) error {
	parent := filepath.Dir(filepath.Join(workdir, plan.SubmodulePath))
	if err := o.fsRepo.MkdirAll(parent, DirPermissionsDefault); err != nil {
		return fmt.Errorf("failed to create submodule parent directory: %w", err)
	}
	if o.gitRepo.SubmoduleRegistered(plan.SubmodulePath) {
		if err := o.gitRepo.SubmoduleInit(ctx, plan.SubmodulePath); err != nil {
			return fmt.Errorf("failed to init submodule: %w", err)
		}
		if err := o.gitRepo.SubmoduleUpdate(ctx, plan.SubmodulePath); err != nil {
			return fmt.Errorf("failed to update submodule: %w", err)
		}
		oldCommit, err := o.gitRepo.SubmoduleHead(ctx, plan.SubmodulePath)
		if err != nil {
			return fmt.Errorf("failed to read submodule commit: %w", err)
		}
		plan.OldCommit = oldCommit
	} else {
		submoduleURL := fmt.Sprintf("https://github.com/%s/%s.git", o.cfg.GithubOwner, plan.RepoName)
		o.log.Info("registering new submodule",
			zap.String("path", plan.SubmodulePath),
			zap.String("url", submoduleURL))
		if err := o.gitRepo.SubmoduleAdd(ctx, submoduleURL, plan.SubmodulePath); err != nil {
			return fmt.Errorf("failed to add submodule: %w", err)
		}
		plan.OldCommit = domain.InitialCommit
	}
	if err := o.gitRepo.CreateBranch(ctx, plan.BranchName); err != nil {
		return fmt.Errorf("failed to create update branch: %w", err)
	}
	if err := o.gitRepo.SubmoduleFetch(ctx, plan.SubmodulePath); err != nil {
		return fmt.Errorf("failed to fetch submodule: %w", err)
	}
	if err := o.gitRepo.SubmoduleCheckout(ctx, plan.SubmodulePath, plan.Version); err != nil {
		return fmt.Errorf("failed to checkout version %s: %w", plan.Version, err)
	}
	newCommit, err := o.gitRepo.SubmoduleHead(ctx, plan.SubmodulePath)
	if err != nil {
		return fmt.Errorf("failed to read updated submodule commit: %w", err)
	}
	plan.NewCommit = newCommit
	o.log.Info("submodule pinned",
		zap.String("path", plan.SubmodulePath),
		zap.String("old_commit", plan.OldCommit),
		zap.String("new_commit", plan.NewCommit))
	return nil
}

// commitAndPush stages the submodule pointer, commits and pushes the update
// branch.
func (o *SubmoduleUpdateOrchestrator) commitAndPush(
	ctx context.Context,
	plan *domain.SubmoduleUpdatePlan,
) error {
	if err := o.gitRepo.AddPath(ctx, plan.SubmodulePath); err != nil {
		return fmt.Errorf("failed to stage submodule: %w", err)
	}
	// .gitmodules changes only when the submodule was just registered
	if plan.OldCommit == domain.InitialCommit {
		if err := o.gitRepo.AddPath(ctx, ".gitmodules"); err != nil {
			return fmt.Errorf("failed to stage .gitmodules: %w", err)
		}
	}
	commit, err := o.gitRepo.Commit(ctx, plan.CommitMessage())
	if err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}
	o.log.Info("update committed", zap.String("commit", commit))
	if err := o.gitRepo.PushBranch(ctx, plan.BranchName); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", plan.BranchName, err)
	}
	return nil
}

// openPullRequest opens the update PR and then labels and merges it on a
// best-effort basis with retry for transient network failures.
func (o *SubmoduleUpdateOrchestrator) openPullRequest(
	ctx context.Context,
	plan *domain.SubmoduleUpdatePlan,
) (*domain.SubmoduleUpdateResult, error) {
	prNumber, err := o.githubRepo.CreatePullRequest(
		ctx,
		plan.ParentRepo,
		plan.PRTitle(),
		plan.PRBody(),
		plan.BranchName,
		o.cfg.BaseBranch,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	o.log.Info("pull request created",
		zap.Int("pr_number", prNumber),
		zap.String("branch", plan.BranchName))
	result := &domain.SubmoduleUpdateResult{PRNumber: prNumber}
	if err := o.withRetry(ctx, func(ctx context.Context) error {
		return o.githubRepo.AddLabelsToPR(ctx, plan.ParentRepo, prNumber, []string{domain.LabelPatch})
	}); err != nil {
		o.log.Warn("failed to label pull request",
			zap.Int("pr_number", prNumber),
			zap.Error(err))
		result.BestEffort = append(result.BestEffort, domain.StepFailure{Step: "label", Err: err})
	}
	if err := o.withRetry(ctx, func(ctx context.Context) error {
		return o.githubRepo.MergePullRequest(
			ctx,
			plan.ParentRepo,
			prNumber,
			plan.MergeCommitTitle(prNumber),
			plan.MergeCommitMessage(),
		)
	}); err != nil {
		o.log.Warn("failed to merge pull request",
			zap.Int("pr_number", prNumber),
			zap.Error(err))
		result.BestEffort = append(result.BestEffort, domain.StepFailure{Step: "merge", Err: err})
	}
	return result, nil
}

// withRetry runs fn with exponential backoff for network failures.
func (o *SubmoduleUpdateOrchestrator) withRetry(ctx context.Context, fn func(context.Context) error) error {
	return retry.Do(
		ctx,
		retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay)),
		func(ctx context.Context) error {
			if err := fn(ctx); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		},
	)
}

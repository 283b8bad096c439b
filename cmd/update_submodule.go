package cmd

import (
	"fmt"

	"github.com/buildops/releasebot/internal/orchestrator"
	"github.com/buildops/releasebot/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newUpdateSubmoduleCmd creates the update-submodule command
func newUpdateSubmoduleCmd(c *container) *cobra.Command {
	var (
		updateParentRepo    string
		updateSubmodulePath string
		updateRepoName      string
		updateVersion       string
		updateMerge         bool
	)
	cmd := &cobra.Command{
		Use:   "update-submodule",
		Short: "Pin the released version in a parent repository",
		Long: `Clone the parent repository, pin its submodule to the released
version on a dedicated branch and open a pull request.

The pull request is labeled semver:patch and merged on a best-effort basis:
failures in those last two steps are reported but never fail the command.
Without --merge the command logs its intent and exits without touching the
parent repository.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			version := updateVersion
			if version == "" {
				var err error
				version, err = c.versionFiles.Read(ctx, repository.NewVersionFile)
				if err != nil {
					return fmt.Errorf("version unavailable, run bump-version first or pass --release-version: %w", err)
				}
			}
			if !updateMerge {
				c.log.Info("merge flag not set, leaving parent repository untouched",
					zap.String("parent_repo", updateParentRepo),
					zap.String("version", version))
				return nil
			}
			if err := c.cfg.ValidateForGitHubOperations(); err != nil {
				return err
			}
			repoName := updateRepoName
			if repoName == "" {
				repoName = c.cfg.GithubRepo
			}
			orch := orchestrator.NewSubmoduleUpdateOrchestrator(c.gitRepo, c.ghRepo, c.fsRepo, c.cfg, c.log)
			result, err := orch.Execute(ctx, orchestrator.SubmoduleUpdateConfig{
				ParentRepo:    updateParentRepo,
				SubmodulePath: updateSubmodulePath,
				RepoName:      repoName,
				Version:       version,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pr_number=%d\n", result.PRNumber)
			for _, failure := range result.BestEffort {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", failure)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&updateParentRepo, "parent-repo", "", "Parent repository carrying the submodule")
	cmd.Flags().StringVar(&updateSubmodulePath, "submodule-path", "", "Path of the submodule inside the parent")
	cmd.Flags().StringVar(&updateRepoName, "repo-name", "", "Submodule repository name (defaults to configuration)")
	cmd.Flags().StringVar(&updateVersion, "release-version", "", "Version to pin (defaults to new_version.txt)")
	cmd.Flags().BoolVar(&updateMerge, "merge", false, "Actually run the update workflow")
	_ = cmd.MarkFlagRequired("parent-repo")
	_ = cmd.MarkFlagRequired("submodule-path")
	return cmd
}

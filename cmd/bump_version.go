package cmd

import (
	"fmt"

	"github.com/buildops/releasebot/internal/domain"
	"github.com/buildops/releasebot/internal/usecase"
	"github.com/spf13/cobra"
)

// newBumpVersionCmd creates the bump-version command
func newBumpVersionCmd(c *container) *cobra.Command {
	var (
		bumpPRNumber       int
		bumpCommitSHA      string
		bumpVersionType    string
		bumpCurrentVersion string
	)
	cmd := &cobra.Command{
		Use:   "bump-version",
		Short: "Compute the next version",
		Long: `Compute the next version from the current one and write it to
new_version.txt.

The bump directive comes from --version-type when given, otherwise from the
semver:* labels of the pull request named by --pr-number. In merge pipelines
where only the merge commit is known, --commit-sha resolves the pull request
first. Without any of these the version gets a timestamp suffix.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var directive domain.BumpDirective
			if bumpVersionType != "" {
				directive = domain.ParseDirective(bumpVersionType)
			} else {
				resolveUC := &usecase.ResolveDirectiveUseCase{GithubRepo: c.ghRepo, Log: c.log}
				directive = resolveUC.Execute(ctx, bumpPRNumber, bumpCommitSHA, domain.BumpTimestamp)
			}
			bumpUC := &usecase.BumpVersionUseCase{VersionFiles: c.versionFiles, Log: c.log}
			next, err := bumpUC.Execute(ctx, bumpCurrentVersion, directive)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
	cmd.Flags().IntVar(&bumpPRNumber, "pr-number", 0, "Pull request whose labels pick the bump directive")
	cmd.Flags().StringVar(&bumpCommitSHA, "commit-sha", "", "Merge commit used to locate the pull request when its number is unknown")
	cmd.Flags().StringVar(&bumpVersionType, "version-type", "", "Bump directive: major, minor, patch or timestamp")
	cmd.Flags().
		StringVar(&bumpCurrentVersion, "current-version", "", "Current version to bump when current_version.txt is absent")
	return cmd
}

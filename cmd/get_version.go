package cmd

import (
	"fmt"

	"github.com/buildops/releasebot/internal/usecase"
	"github.com/spf13/cobra"
)

// newGetVersionCmd creates the get-version command
func newGetVersionCmd(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "get-version",
		Short: "Fetch the latest released version",
		Long: `Fetch the latest released version from GitHub and write it to
current_version.txt for the next pipeline stage. A repository without
releases yields v0.0.0.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := &usecase.FetchLatestVersionUseCase{
				GithubRepo:   c.ghRepo,
				VersionFiles: c.versionFiles,
				Log:          c.log,
			}
			version, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/buildops/releasebot/internal/repository"
	"github.com/buildops/releasebot/internal/usecase"
	"github.com/spf13/cobra"
)

// newCreateReleaseCmd creates the create-release command
func newCreateReleaseCmd(c *container) *cobra.Command {
	var (
		releaseVersion   string
		releaseProd      bool
		releaseSkipAsset bool
		releaseAssetPath string
	)
	cmd := &cobra.Command{
		Use:   "create-release",
		Short: "Publish a GitHub release with its binary asset",
		Long: `Publish a GitHub release for the version from new_version.txt (or
--release-version) and upload the binary asset. Releases are drafts unless
--prod is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			version := releaseVersion
			if version == "" {
				var err error
				version, err = c.versionFiles.Read(ctx, repository.NewVersionFile)
				if err != nil {
					return fmt.Errorf("release version unavailable, run bump-version first or pass --release-version: %w", err)
				}
			}
			assetPath := releaseAssetPath
			if assetPath == "" {
				assetPath = c.cfg.AssetPath
			}
			uc := &usecase.PublishReleaseUseCase{GithubRepo: c.ghRepo, Log: c.log}
			record, err := uc.Execute(ctx, usecase.PublishReleaseInput{
				Version:   version,
				Draft:     !releaseProd,
				SkipAsset: releaseSkipAsset,
				AssetPath: assetPath,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "release_id=%d\n", record.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&releaseVersion, "release-version", "", "Version to release (defaults to new_version.txt)")
	cmd.Flags().BoolVar(&releaseProd, "prod", false, "Publish a production release instead of a draft")
	cmd.Flags().BoolVar(&releaseSkipAsset, "skip-asset", false, "Create the release without uploading an asset")
	cmd.Flags().StringVar(&releaseAssetPath, "asset", "", "Path to the release asset (defaults to configuration)")
	return cmd
}

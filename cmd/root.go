package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "releasebot",
	Short: "A CI tool for publishing releases and propagating them to parent repositories",
	Long: `releasebot drives the release pipeline: it fetches the latest released
version, computes the next one, publishes the release with its binary asset,
and opens a pull request pinning the submodule in a parent repository.`,
}

func Execute() error {
	return rootCmd.Execute()
}

package domain

import "fmt"

// InitialCommit is the sentinel recorded when a submodule has no prior
// commit, e.g. a brand-new registration.
const InitialCommit = "initial"

// SubmoduleUpdatePlan carries the state of one submodule-update run. It is
// created when the workflow starts and discarded once the PR exists.
type SubmoduleUpdatePlan struct {
	ParentRepo    string
	SubmodulePath string
	RepoName      string
	Version       string
	BranchName    string
	OldCommit     string
	NewCommit     string
}

// NewSubmoduleUpdatePlan builds a plan with the deterministic branch name
// update-{repoName}-{version}.
func NewSubmoduleUpdatePlan(parentRepo, submodulePath, repoName, version string) *SubmoduleUpdatePlan {
	return &SubmoduleUpdatePlan{
		ParentRepo:    parentRepo,
		SubmodulePath: submodulePath,
		RepoName:      repoName,
		Version:       version,
		BranchName:    fmt.Sprintf("update-%s-%s", repoName, version),
	}
}

// CommitMessage returns the conventional commit message for the update.
func (p *SubmoduleUpdatePlan) CommitMessage() string {
	return fmt.Sprintf("chore: update %s submodule to %s", p.RepoName, p.Version)
}

// PRTitle returns the pull request title.
func (p *SubmoduleUpdatePlan) PRTitle() string {
	return fmt.Sprintf("Update %s submodule to %s", p.RepoName, p.Version)
}

// PRBody returns the pull request body, including both the pre-update and
// post-update submodule commit identifiers.
func (p *SubmoduleUpdatePlan) PRBody() string {
	return fmt.Sprintf(
		"This PR updates the %s submodule from commit `%s` to `%s`\n\nVersion: %s",
		p.RepoName, p.OldCommit, p.NewCommit, p.Version,
	)
}

// MergeCommitTitle returns the deterministic title for the auto-merge commit.
func (p *SubmoduleUpdatePlan) MergeCommitTitle(prNumber int) string {
	return fmt.Sprintf("%s (#%d)", p.CommitMessage(), prNumber)
}

// MergeCommitMessage returns the body for the auto-merge commit.
func (p *SubmoduleUpdatePlan) MergeCommitMessage() string {
	return fmt.Sprintf(
		"Update %s submodule from commit `%s` to `%s`\n\nVersion: %s",
		p.RepoName, p.OldCommit, p.NewCommit, p.Version,
	)
}

package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSourceRepo creates a local repository with a single commit to clone from.
func newSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# test\n"), 0644))
	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add("README.md")
	require.NoError(t, err)
	_, err = w.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestGitRepository_CloneAndCommit(t *testing.T) {
	ctx := context.Background()
	source := newSourceRepo(t)
	dest := filepath.Join(t.TempDir(), "clone")
	repo := NewGitExtendedRepository("")

	t.Run("Should clone a repository into a fresh directory", func(t *testing.T) {
		require.NoError(t, repo.Clone(ctx, source, dest))
		_, err := os.Stat(filepath.Join(dest, "README.md"))
		assert.NoError(t, err)
	})
	t.Run("Should create and checkout a branch", func(t *testing.T) {
		require.NoError(t, repo.CreateBranch(ctx, "update-x-v2.0.0"))
		opened, err := git.PlainOpen(dest)
		require.NoError(t, err)
		head, err := opened.Head()
		require.NoError(t, err)
		assert.Equal(t, "update-x-v2.0.0", head.Name().Short())
	})
	t.Run("Should reject creating an existing branch", func(t *testing.T) {
		assert.Error(t, repo.CreateBranch(ctx, "update-x-v2.0.0"))
	})
	t.Run("Should stage and commit a change", func(t *testing.T) {
		require.NoError(t, repo.ConfigureUser(ctx, "release-bot", "release-bot@users.noreply.github.com"))
		before, err := repo.HeadCommit(ctx)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dest, "VERSION"), []byte("v2.0.0\n"), 0644))
		require.NoError(t, repo.AddPath(ctx, "VERSION"))
		sha, err := repo.Commit(ctx, "chore: update x submodule to v2.0.0")
		require.NoError(t, err)
		assert.NotEmpty(t, sha)
		after, err := repo.HeadCommit(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
		assert.Equal(t, sha, after)
	})
	t.Run("Should detect submodule registration from .gitmodules", func(t *testing.T) {
		assert.False(t, repo.SubmoduleRegistered("libs/x"))
		gitmodules := "[submodule \"libs/x\"]\n\tpath = libs/x\n\turl = https://example.com/x.git\n"
		require.NoError(t, os.WriteFile(filepath.Join(dest, ".gitmodules"), []byte(gitmodules), 0644))
		assert.True(t, repo.SubmoduleRegistered("libs/x"))
		assert.False(t, repo.SubmoduleRegistered("libs/other"))
	})
}

func TestGitRepository_RequiresClone(t *testing.T) {
	ctx := context.Background()
	repo := NewGitExtendedRepository("")
	t.Run("Should fail operations before clone", func(t *testing.T) {
		_, err := repo.HeadCommit(ctx)
		assert.Error(t, err)
		assert.Error(t, repo.CreateBranch(ctx, "update-x-v1.0.0"))
		assert.Error(t, repo.SubmoduleInit(ctx, "libs/x"))
	})
}

func TestSanitizeSubmodulePath(t *testing.T) {
	t.Run("Should accept normal relative paths", func(t *testing.T) {
		assert.NoError(t, sanitizeSubmodulePath("libs/x"))
		assert.NoError(t, sanitizeSubmodulePath("vendor/module-a"))
	})
	t.Run("Should reject traversal and flag-like paths", func(t *testing.T) {
		assert.Error(t, sanitizeSubmodulePath(""))
		assert.Error(t, sanitizeSubmodulePath("../escape"))
		assert.Error(t, sanitizeSubmodulePath("--upload-pack=evil"))
		assert.Error(t, sanitizeSubmodulePath("/absolute/path"))
	})
}

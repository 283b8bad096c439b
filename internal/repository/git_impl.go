package repository

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// DefaultGitTimeout bounds a single git subprocess invocation.
const DefaultGitTimeout = 120 * time.Second

var validSubmodulePath = regexp.MustCompile(`^[a-zA-Z0-9._/\-]+$`)

// gitRepository is the implementation of the GitExtendedRepository interface.
// Working-copy plumbing goes through go-git; the submodule registration
// commands run the git binary because go-git has no submodule-add and no
// path-scoped update.
type gitRepository struct {
	workdir string
	repo    *git.Repository
	token   string
	timeout time.Duration
}

// NewGitRepository creates a GitRepository authenticating pushes and fetches
// with the given token.
func NewGitRepository(token string) GitRepository {
	return &gitRepository{token: token, timeout: DefaultGitTimeout}
}

// NewGitExtendedRepository creates a GitExtendedRepository with all submodule
// operations.
func NewGitExtendedRepository(token string) GitExtendedRepository {
	return &gitRepository{token: token, timeout: DefaultGitTimeout}
}

// Clone clones the repository at url into dir and binds this instance to the
// resulting working copy.
func (r *gitRepository) Clone(ctx context.Context, url, dir string) error {
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:  url,
		Auth: r.auth(),
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}
	r.workdir = dir
	r.repo = repo
	return nil
}

// auth returns token authentication for the remote, or nil when no token is
// configured.
func (r *gitRepository) auth() *http.BasicAuth {
	if r.token == "" {
		return nil
	}
	// x-access-token works for both PATs and app installation tokens
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: r.token,
	}
}

// ConfigureUser sets the git identity for the working copy only, never the
// global configuration.
func (r *gitRepository) ConfigureUser(_ context.Context, name, email string) error {
	if r.repo == nil {
		return fmt.Errorf("no working copy: clone first")
	}
	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	cfg.User.Name = name
	cfg.User.Email = email
	return r.repo.Storer.SetConfig(cfg)
}

// CreateBranch creates a branch at HEAD and checks it out.
func (r *gitRepository) CreateBranch(_ context.Context, name string) error {
	if r.repo == nil {
		return fmt.Errorf("no working copy: clone first")
	}
	branchRef := plumbing.NewBranchReferenceName(name)
	if _, err := r.repo.Reference(branchRef, false); err == nil {
		return fmt.Errorf("branch %s already exists", name)
	}
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(branchRef, head.Hash())); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	return w.Checkout(&git.CheckoutOptions{Branch: branchRef})
}

// AddPath stages the given path.
func (r *gitRepository) AddPath(_ context.Context, path string) error {
	if r.repo == nil {
		return fmt.Errorf("no working copy: clone first")
	}
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := w.Add(path); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return nil
}

// Commit creates a commit and returns its hash.
func (r *gitRepository) Commit(_ context.Context, message string) (string, error) {
	if r.repo == nil {
		return "", fmt.Errorf("no working copy: clone first")
	}
	w, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	hash, err := w.Commit(message, &git.CommitOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", err)
	}
	return hash.String(), nil
}

// PushBranch pushes the named branch to origin.
func (r *gitRepository) PushBranch(ctx context.Context, name string) error {
	if r.repo == nil {
		return fmt.Errorf("no working copy: clone first")
	}
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RefSpecs: []config.RefSpec{config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", name, name))},
		Auth:     r.auth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to push branch %s: %w", name, err)
	}
	return nil
}

// HeadCommit returns the SHA of the working copy's HEAD commit.
func (r *gitRepository) HeadCommit(_ context.Context) (string, error) {
	if r.repo == nil {
		return "", fmt.Errorf("no working copy: clone first")
	}
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// SubmoduleInit initializes exactly the submodule at path.
func (r *gitRepository) SubmoduleInit(ctx context.Context, path string) error {
	if err := sanitizeSubmodulePath(path); err != nil {
		return err
	}
	_, err := r.runGit(ctx, "submodule", "init", "--", path)
	return err
}

// SubmoduleUpdate updates exactly the submodule at path.
func (r *gitRepository) SubmoduleUpdate(ctx context.Context, path string) error {
	if err := sanitizeSubmodulePath(path); err != nil {
		return err
	}
	_, err := r.runGit(ctx, "submodule", "update", "--init", "--", path)
	return err
}

// SubmoduleAdd registers a new submodule at path pointing at url.
func (r *gitRepository) SubmoduleAdd(ctx context.Context, url, path string) error {
	if err := sanitizeSubmodulePath(path); err != nil {
		return err
	}
	_, err := r.runGit(ctx, "submodule", "add", url, path)
	return err
}

// SubmoduleRegistered reports whether the parent's .gitmodules lists the
// path. Registration is independent of whether the working copy was ever
// checked out.
func (r *gitRepository) SubmoduleRegistered(path string) bool {
	if r.repo == nil {
		return false
	}
	w, err := r.repo.Worktree()
	if err != nil {
		return false
	}
	subs, err := w.Submodules()
	if err != nil {
		return false
	}
	for _, sub := range subs {
		if sub.Config().Path == path {
			return true
		}
	}
	return false
}

// SubmoduleHead returns the current commit of the submodule working copy.
func (r *gitRepository) SubmoduleHead(_ context.Context, path string) (string, error) {
	sub, err := git.PlainOpen(filepath.Join(r.workdir, path))
	if err != nil {
		return "", fmt.Errorf("failed to open submodule %s: %w", path, err)
	}
	head, err := sub.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get submodule HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// SubmoduleFetch fetches origin (including tags) inside the submodule.
func (r *gitRepository) SubmoduleFetch(ctx context.Context, path string) error {
	sub, err := git.PlainOpen(filepath.Join(r.workdir, path))
	if err != nil {
		return fmt.Errorf("failed to open submodule %s: %w", path, err)
	}
	err = sub.FetchContext(ctx, &git.FetchOptions{
		RemoteName: "origin",
		Tags:       git.AllTags,
		Auth:       r.auth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to fetch submodule %s: %w", path, err)
	}
	return nil
}

// SubmoduleCheckout checks out the given ref inside the submodule.
func (r *gitRepository) SubmoduleCheckout(_ context.Context, path, ref string) error {
	sub, err := git.PlainOpen(filepath.Join(r.workdir, path))
	if err != nil {
		return fmt.Errorf("failed to open submodule %s: %w", path, err)
	}
	hash, err := sub.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return fmt.Errorf("failed to resolve ref %s in submodule %s: %w", ref, path, err)
	}
	w, err := sub.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get submodule worktree: %w", err)
	}
	if err := w.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
		return fmt.Errorf("failed to checkout %s in submodule %s: %w", ref, path, err)
	}
	return nil
}

// runGit executes the git binary inside the working copy with a timeout.
func (r *gitRepository) runGit(ctx context.Context, args ...string) ([]byte, error) {
	if r.workdir == "" {
		return nil, fmt.Errorf("no working copy: clone first")
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.workdir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("git %s timed out after %v", strings.Join(args, " "), r.timeout)
		}
		if msg := stderr.String(); msg != "" {
			return nil, fmt.Errorf("git %s failed: %w (stderr: %s)", strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

// sanitizeSubmodulePath rejects paths that could escape the working copy or
// smuggle flags into the git invocation.
func sanitizeSubmodulePath(path string) error {
	if path == "" {
		return fmt.Errorf("submodule path cannot be empty")
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("invalid submodule path: contains directory traversal")
	}
	if strings.HasPrefix(path, "-") || strings.HasPrefix(path, "/") {
		return fmt.Errorf("invalid submodule path: %s", path)
	}
	if !validSubmodulePath.MatchString(path) {
		return fmt.Errorf("invalid submodule path format: %s", path)
	}
	return nil
}

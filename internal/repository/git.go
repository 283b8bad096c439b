package repository

import "context"

// GitRepository manages a disposable working copy of the parent repository.
// A repository instance owns at most one clone; every operation targets that
// working copy.

type GitRepository interface {
	Clone(ctx context.Context, url, dir string) error
	ConfigureUser(ctx context.Context, name, email string) error
	// CreateBranch creates the named branch at HEAD and checks it out.
	CreateBranch(ctx context.Context, name string) error
	// AddPath stages changes under the given path.
	AddPath(ctx context.Context, path string) error
	Commit(ctx context.Context, message string) (string, error)
	PushBranch(ctx context.Context, name string) error
	HeadCommit(ctx context.Context) (string, error)
}

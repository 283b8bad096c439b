package repository

import "context"

// GitExtendedRepository extends GitRepository with the path-scoped submodule
// operations the update workflow needs. Submodule init/update/add are scoped
// to a single path so unrelated submodules in the parent are left untouched.
type GitExtendedRepository interface {
	GitRepository
	// Submodule registration
	SubmoduleInit(ctx context.Context, path string) error
	SubmoduleUpdate(ctx context.Context, path string) error
	SubmoduleAdd(ctx context.Context, url, path string) error
	// SubmoduleRegistered reports whether .gitmodules lists the path.
	SubmoduleRegistered(path string) bool
	// Operations inside the submodule working copy
	SubmoduleHead(ctx context.Context, path string) (string, error)
	SubmoduleFetch(ctx context.Context, path string) error
	SubmoduleCheckout(ctx context.Context, path, ref string) error
}

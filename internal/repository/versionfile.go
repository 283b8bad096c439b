package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

// Pipeline handoff files shared between release stages.
const (
	CurrentVersionFile = "current_version.txt"
	NewVersionFile     = "new_version.txt"
)

const (
	// VersionFilePermissions defines the permissions for version files
	VersionFilePermissions = 0644
	// versionFileLockTimeout is the maximum time to wait for the file lock
	versionFileLockTimeout = 30 * time.Second
	// versionFileLockRetry is the interval between lock attempts
	versionFileLockRetry = 100 * time.Millisecond
)

// VersionFileRepository passes version strings between pipeline stages as
// plain-text files, one version per file.
type VersionFileRepository interface {
	Read(ctx context.Context, name string) (string, error)
	Write(ctx context.Context, name, version string) error
}

// versionFileRepository stores version files in a single directory, guarded
// by an advisory file lock so concurrent pipeline stages do not interleave
// partial writes.
type versionFileRepository struct {
	fs  afero.Fs
	dir string
}

// NewVersionFileRepository creates a version file repository rooted at dir.
func NewVersionFileRepository(fs afero.Fs, dir string) VersionFileRepository {
	if dir == "" {
		dir = "."
	}
	return &versionFileRepository{fs: fs, dir: dir}
}

// Read returns the version stored in the named file, without surrounding
// whitespace.
func (r *versionFileRepository) Read(ctx context.Context, name string) (string, error) {
	unlock, err := r.lock(ctx, name, func(l *flock.Flock) (bool, error) { return l.TryRLock() })
	if err != nil {
		return "", err
	}
	defer unlock()
	data, err := afero.ReadFile(r.fs, filepath.Join(r.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("version file %s not found: %w", name, err)
		}
		return "", fmt.Errorf("failed to read version file %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Write stores the version in the named file atomically via a temp file and
// rename.
func (r *versionFileRepository) Write(ctx context.Context, name, version string) error {
	unlock, err := r.lock(ctx, name, func(l *flock.Flock) (bool, error) { return l.TryLock() })
	if err != nil {
		return err
	}
	defer unlock()
	target := filepath.Join(r.dir, name)
	tempFile := target + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, []byte(version), VersionFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp version file: %w", err)
	}
	if err := r.fs.Rename(tempFile, target); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename version file: %w", err)
	}
	return nil
}

// lock acquires the advisory lock for a version file and returns an unlock
// function.
func (r *versionFileRepository) lock(
	ctx context.Context,
	name string,
	try func(*flock.Flock) (bool, error),
) (func(), error) {
	lockFile := flock.New(filepath.Join(r.dir, "."+name+".lock"))
	lockCtx, cancel := context.WithTimeout(ctx, versionFileLockTimeout)
	defer cancel()
	ticker := time.NewTicker(versionFileLockRetry)
	defer ticker.Stop()
	for {
		locked, err := try(lockFile)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire version file lock: %w", err)
		}
		if locked {
			return func() {
				if unlockErr := lockFile.Unlock(); unlockErr != nil {
					fmt.Fprintf(os.Stderr, "warning: failed to unlock version file: %v\n", unlockErr)
				}
			}, nil
		}
		select {
		case <-lockCtx.Done():
			return nil, fmt.Errorf("could not acquire version file lock within timeout: %w", lockCtx.Err())
		case <-ticker.C:
		}
	}
}

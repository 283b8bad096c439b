package repository

import "github.com/spf13/afero"

// FileSystemRepository defines the interface for filesystem operations.

type FileSystemRepository interface {
	afero.Fs
}

// NewOsFileSystem returns a FileSystemRepository backed by the real filesystem.
func NewOsFileSystem() FileSystemRepository {
	return afero.NewOsFs()
}

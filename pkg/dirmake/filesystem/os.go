package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements DirFS on the real filesystem. Paths are passed
// through untouched, so absolute and relative targets both work.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS-backed filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat implements StatFS.
func (osfs *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Mkdir implements DirWriteFS. The parent must already exist.
func (osfs *OSFileSystem) Mkdir(path string, perm fs.FileMode) error {
	return os.Mkdir(path, perm)
}

// MkdirAll implements DirWriteFS.
func (osfs *OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Chmod implements DirWriteFS.
func (osfs *OSFileSystem) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(name, mode)
}

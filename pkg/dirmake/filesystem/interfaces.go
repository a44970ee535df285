// Package filesystem provides the filesystem seam for the directory
// creation engine, with an OS-backed implementation and an in-memory one
// for tests.
package filesystem

import (
	"io/fs"
)

// StatFS exposes existence probing.
type StatFS interface {
	Stat(name string) (fs.FileInfo, error)
}

// DirWriteFS defines the write operations the creation engine needs.
type DirWriteFS interface {
	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
}

// DirFS combines probing and directory write operations.
type DirFS interface {
	StatFS
	DirWriteFS
}

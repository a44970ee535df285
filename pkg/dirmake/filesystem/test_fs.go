package filesystem

import (
	"io/fs"
	"path"
	"syscall"
	"testing/fstest"
)

// TestFileSystem implements DirFS on top of fstest.MapFS. Unlike the real
// MapFS it enforces mkdir semantics: Mkdir requires the parent to exist
// and fails on an existing target, and existence is decided by explicit
// map entries only, never synthesized from deeper paths.
type TestFileSystem struct {
	fstest.MapFS
}

// NewTestFileSystem creates an empty in-memory filesystem.
func NewTestFileSystem() *TestFileSystem {
	return &TestFileSystem{
		MapFS: make(fstest.MapFS),
	}
}

// NewTestFileSystemFromMap creates a test filesystem from an existing map.
func NewTestFileSystemFromMap(files map[string]*fstest.MapFile) *TestFileSystem {
	return &TestFileSystem{
		MapFS: files,
	}
}

// Stat implements StatFS. The root "." always exists.
func (tfs *TestFileSystem) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	if _, ok := tfs.MapFS[name]; !ok && name != "." {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return tfs.MapFS.Stat(name)
}

// Mkdir implements DirWriteFS with parent-must-exist semantics.
func (tfs *TestFileSystem) Mkdir(name string, perm fs.FileMode) error {
	if !fs.ValidPath(name) || name == "." {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrInvalid}
	}
	if _, exists := tfs.MapFS[name]; exists {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	parent := path.Dir(name)
	if parent != "." {
		entry, exists := tfs.MapFS[parent]
		if !exists {
			return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrNotExist}
		}
		if !entry.Mode.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: name, Err: syscall.ENOTDIR}
		}
	}
	tfs.MapFS[name] = &fstest.MapFile{Mode: perm | fs.ModeDir}
	return nil
}

// MkdirAll implements DirWriteFS. Existing directory prefixes are kept
// as they are; an existing non-directory prefix is an error.
func (tfs *TestFileSystem) MkdirAll(name string, perm fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return nil
	}
	parent := path.Dir(name)
	if parent != "." {
		if err := tfs.MkdirAll(parent, perm); err != nil {
			return err
		}
	}
	if entry, exists := tfs.MapFS[name]; exists {
		if !entry.Mode.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: name, Err: syscall.ENOTDIR}
		}
		return nil
	}
	tfs.MapFS[name] = &fstest.MapFile{Mode: perm | fs.ModeDir}
	return nil
}

// Chmod implements DirWriteFS, replacing the permission bits and keeping
// the file type bits.
func (tfs *TestFileSystem) Chmod(name string, mode fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "chmod", Path: name, Err: fs.ErrInvalid}
	}
	entry, exists := tfs.MapFS[name]
	if !exists {
		return &fs.PathError{Op: "chmod", Path: name, Err: fs.ErrNotExist}
	}
	entry.Mode = entry.Mode&fs.ModeType | mode&fs.ModePerm
	return nil
}

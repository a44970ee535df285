package dirmake

import (
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dirmake/pkg/dirmake/filesystem"
	"github.com/arthur-debert/dirmake/pkg/dirmake/mode"
)

// Request describes one directory to create. Parents comes from the
// invocation-wide flag; verbose reporting and mode application are
// decided by the caller from the engine's Outcome.
type Request struct {
	Path    string
	Parents bool
}

// Outcome is the result of processing one Request. Created lists the
// newly created directories, shallowest first, for verbose reporting.
type Outcome struct {
	Path    string
	Created []string
	Err     error
}

// Creator is the directory creation engine.
type Creator struct {
	fs     filesystem.DirFS
	logger zerolog.Logger
}

// NewCreator creates a Creator operating on the given filesystem.
func NewCreator(fsys filesystem.DirFS, logger zerolog.Logger) *Creator {
	return &Creator{fs: fsys, logger: logger}
}

// Create creates the requested directory. Without Parents the parent must
// already exist and an existing target is an error. With Parents missing
// ancestors are created and an existing target is a silent no-op.
//
// Which directories count as newly created is decided by probing the
// filesystem before the creation call mutates it.
func (c *Creator) Create(req Request) Outcome {
	c.logger.Debug().
		Str("path", req.Path).
		Bool("parents", req.Parents).
		Msg("creating directory")

	if !req.Parents {
		if err := c.fs.Mkdir(req.Path, DirModeDefault); err != nil {
			return Outcome{Path: req.Path, Err: &CreateError{Path: req.Path, Err: err}}
		}
		return Outcome{Path: req.Path, Created: []string{req.Path}}
	}

	if c.exists(req.Path) {
		c.logger.Debug().Str("path", req.Path).Msg("directory already exists")
		return Outcome{Path: req.Path}
	}

	missing := c.missingPrefixes(req.Path)
	if err := c.fs.MkdirAll(req.Path, DirModeDefault); err != nil {
		return Outcome{Path: req.Path, Err: &CreateError{Path: req.Path, Err: err}}
	}
	return Outcome{Path: req.Path, Created: missing}
}

// Preview computes the Outcome Create would produce without touching the
// filesystem. Races between preview and a later Create are not detected.
func (c *Creator) Preview(req Request) Outcome {
	if !req.Parents {
		if c.exists(req.Path) {
			err := &fs.PathError{Op: "mkdir", Path: req.Path, Err: fs.ErrExist}
			return Outcome{Path: req.Path, Err: &CreateError{Path: req.Path, Err: err}}
		}
		if parent := filepath.Dir(req.Path); parent != "." && !c.exists(parent) {
			err := &fs.PathError{Op: "mkdir", Path: req.Path, Err: fs.ErrNotExist}
			return Outcome{Path: req.Path, Err: &CreateError{Path: req.Path, Err: err}}
		}
		return Outcome{Path: req.Path, Created: []string{req.Path}}
	}

	if c.exists(req.Path) {
		return Outcome{Path: req.Path}
	}
	return Outcome{Path: req.Path, Created: c.missingPrefixes(req.Path)}
}

// ApplyMode overwrites the directory's permission bits with the parsed
// mode. A nil set means no mode change was requested.
func (c *Creator) ApplyMode(path string, set *mode.Set) error {
	if set == nil {
		return nil
	}
	c.logger.Debug().
		Str("path", path).
		Stringer("mode", set).
		Msg("applying mode")
	if err := c.fs.Chmod(path, set.FileMode()); err != nil {
		return &ChmodError{Path: path, Err: err}
	}
	return nil
}

func (c *Creator) exists(path string) bool {
	_, err := c.fs.Stat(path)
	return err == nil
}

// missingPrefixes returns the prefixes of path that do not exist yet,
// shallowest first, the target itself last.
func (c *Creator) missingPrefixes(path string) []string {
	var missing []string
	for _, prefix := range prefixes(path) {
		if !c.exists(prefix) {
			missing = append(missing, prefix)
		}
	}
	return missing
}

// prefixes expands a cleaned path into all its component prefixes,
// shallowest first: "a/b/c" yields a, a/b, a/b/c. The filesystem root and
// "." are never included.
func prefixes(path string) []string {
	var ps []string
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if p == "." || p == filepath.Dir(p) {
			break
		}
		ps = append(ps, p)
	}
	for i, j := 0, len(ps)-1; i < j; i, j = i+1, j-1 {
		ps[i], ps[j] = ps[j], ps[i]
	}
	return ps
}

package dirmake

import "io/fs"

// Directory permission constants.
const (
	// DirModeDefault is the mode newly created directories get before any
	// mode expression is applied.
	DirModeDefault fs.FileMode = 0o755 // drwxr-xr-x
)

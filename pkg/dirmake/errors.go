package dirmake

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrNotAllCreated reports that at least one requested directory could
// not be created. Per-path details have already been written to the
// error stream by the time Run returns it.
var ErrNotAllCreated = errors.New("not all directories were created")

// CreateError describes a failed creation attempt for one path.
type CreateError struct {
	Path string
	Err  error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("cannot create directory `%s` %v", e.Path, osErrorText(e.Err))
}

func (e *CreateError) Unwrap() error {
	return e.Err
}

// ChmodError describes a failed mode application after a successful
// creation. Unlike CreateError it halts the whole run.
type ChmodError struct {
	Path string
	Err  error
}

func (e *ChmodError) Error() string {
	return fmt.Sprintf("cannot set mode on directory `%s` %v", e.Path, osErrorText(e.Err))
}

func (e *ChmodError) Unwrap() error {
	return e.Err
}

// osErrorText strips the syscall wrapping so messages read
// "file exists" instead of "mkdir /a/b: file exists" (the path is
// already part of the surrounding message).
func osErrorText(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

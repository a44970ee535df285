// Package dirmake implements the directory creation engine behind the
// dirmake command: per-path creation with optional ancestors, verbose
// reporting of what was newly created, and symbolic mode application.
package dirmake

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dirmake/pkg/dirmake/filesystem"
	"github.com/arthur-debert/dirmake/pkg/dirmake/mode"
)

// Options configures a Run. Zero values select the OS filesystem, the
// process's stdout/stderr and the default logger.
type Options struct {
	Parents bool
	Verbose bool
	DryRun  bool
	Sort    bool
	Mode    *mode.Set

	FS     filesystem.DirFS
	Stdout io.Writer
	Stderr io.Writer
	Logger *zerolog.Logger
}

// Run processes every requested path in command-line order: creation,
// verbose reporting, mode application. With Sort enabled the batch is
// first reordered so requested ancestors come before their descendants.
// A creation failure is reported to the error stream and the batch
// continues; a mode application failure propagates immediately. When any
// path failed, Run returns ErrNotAllCreated after the batch completes.
func Run(opts Options, paths []string) error {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOSFileSystem()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	var logger zerolog.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	} else {
		logger = DefaultLogger()
	}

	ordered := paths
	if opts.Sort {
		var err error
		ordered, err = Plan(paths)
		if err != nil {
			return err
		}
	}

	creator := NewCreator(fsys, logger)
	// Dry runs exist to show what would happen, so they always report.
	report := opts.Verbose || opts.DryRun

	failed := false
	for _, path := range ordered {
		req := Request{Path: path, Parents: opts.Parents}

		var outcome Outcome
		if opts.DryRun {
			outcome = creator.Preview(req)
		} else {
			outcome = creator.Create(req)
		}

		if outcome.Err != nil {
			failed = true
			fmt.Fprintln(stderr, outcome.Err)
			continue
		}

		if report {
			for _, dir := range outcome.Created {
				fmt.Fprintf(stdout, "created directory '%s'\n", dir)
			}
		}

		if opts.DryRun {
			continue
		}
		if err := creator.ApplyMode(path, opts.Mode); err != nil {
			return err
		}
	}

	if failed {
		return ErrNotAllCreated
	}
	return nil
}

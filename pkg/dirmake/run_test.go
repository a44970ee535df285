package dirmake_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/arthur-debert/dirmake/pkg/dirmake"
	"github.com/arthur-debert/dirmake/pkg/dirmake/filesystem"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

// failingChmodFS makes every Chmod fail, for exercising the halt-on-chmod
// policy.
type failingChmodFS struct {
	*filesystem.TestFileSystem
}

func (f *failingChmodFS) Chmod(name string, mode fs.FileMode) error {
	return &fs.PathError{Op: "chmod", Path: name, Err: fs.ErrPermission}
}

func runBatch(t *testing.T, fsys filesystem.DirFS, opts dirmake.Options, paths []string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	logger := dirmake.NewTestLogger(io.Discard, 0)

	opts.FS = fsys
	opts.Stdout = &stdout
	opts.Stderr = &stderr
	opts.Logger = &logger

	err := dirmake.Run(opts, paths)
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestRunVerboseAncestorReporting(t *testing.T) {
	tfs := filesystem.NewTestFileSystem()

	res := runBatch(t, tfs, dirmake.Options{Parents: true, Verbose: true}, []string{"a/b/c"})
	if res.err != nil {
		t.Fatalf("Run failed: %v", res.err)
	}

	want := "created directory 'a'\n" +
		"created directory 'a/b'\n" +
		"created directory 'a/b/c'\n"
	if res.stdout != want {
		t.Errorf("Expected stdout %q, got %q", want, res.stdout)
	}
	if res.stderr != "" {
		t.Errorf("Expected empty stderr, got %q", res.stderr)
	}
}

func TestRunVerboseSkipsExistingPrefixes(t *testing.T) {
	tfs := filesystem.NewTestFileSystem()
	if err := tfs.Mkdir("a", 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	res := runBatch(t, tfs, dirmake.Options{Parents: true, Verbose: true}, []string{"a/b/c"})
	if res.err != nil {
		t.Fatalf("Run failed: %v", res.err)
	}

	want := "created directory 'a/b'\n" +
		"created directory 'a/b/c'\n"
	if res.stdout != want {
		t.Errorf("Expected stdout %q, got %q", want, res.stdout)
	}
}

func TestRunParentsIdempotent(t *testing.T) {
	tfs := filesystem.NewTestFileSystem()
	opts := dirmake.Options{Parents: true, Verbose: true}

	if res := runBatch(t, tfs, opts, []string{"a/b"}); res.err != nil {
		t.Fatalf("Run failed: %v", res.err)
	}

	res := runBatch(t, tfs, opts, []string{"a/b"})
	if res.err != nil {
		t.Fatalf("Expected no-op success, got %v", res.err)
	}
	if res.stdout != "" {
		t.Errorf("Expected no verbose output, got %q", res.stdout)
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	tfs := filesystem.NewTestFileSystem()

	res := runBatch(t, tfs, dirmake.Options{}, []string{"missing/child", "ok"})
	if !errors.Is(res.err, dirmake.ErrNotAllCreated) {
		t.Fatalf("Expected ErrNotAllCreated, got %v", res.err)
	}

	if !strings.Contains(res.stderr, "cannot create directory `missing/child`") {
		t.Errorf("Expected failure message on stderr, got %q", res.stderr)
	}
	// The failure must not stop the rest of the batch.
	if _, err := tfs.Stat("ok"); err != nil {
		t.Errorf("Expected ok to be created, got %v", err)
	}
}

func TestRunFailureMessageFormat(t *testing.T) {
	tfs := filesystem.NewTestFileSystem()
	if err := tfs.Mkdir("a", 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	res := runBatch(t, tfs, dirmake.Options{}, []string{"a"})

	want := "cannot create directory `a` file already exists\n"
	if res.stderr != want {
		t.Errorf("Expected stderr %q, got %q", want, res.stderr)
	}
}

func TestRunAppliesMode(t *testing.T) {
	tfs := filesystem.NewTestFileSystem()

	res := runBatch(t, tfs, dirmake.Options{Parents: true, Mode: mustParseMode(t, "w")}, []string{"a"})
	if res.err != nil {
		t.Fatalf("Run failed: %v", res.err)
	}

	info, err := tfs.Stat("a")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o222 {
		t.Errorf("Expected mode 0o222, got %o", got)
	}
}

func TestRunModeAppliedToExistingTarget(t *testing.T) {
	tfs := filesystem.NewTestFileSystem()
	if err := tfs.Mkdir("a", 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	res := runBatch(t, tfs, dirmake.Options{Parents: true, Mode: mustParseMode(t, "u=w")}, []string{"a"})
	if res.err != nil {
		t.Fatalf("Run failed: %v", res.err)
	}

	info, err := tfs.Stat("a")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o200 {
		t.Errorf("Expected mode 0o200 overwriting prior bits, got %o", got)
	}
}

func TestRunChmodFailureHaltsBatch(t *testing.T) {
	tfs := &failingChmodFS{filesystem.NewTestFileSystem()}

	res := runBatch(t, tfs, dirmake.Options{Parents: true, Mode: mustParseMode(t, "rwx")}, []string{"a", "b"})

	var chmodErr *dirmake.ChmodError
	if !errors.As(res.err, &chmodErr) {
		t.Fatalf("Expected ChmodError, got %v", res.err)
	}
	// The run halts before the second path is processed.
	if _, err := tfs.Stat("b"); err == nil {
		t.Errorf("Expected b to be skipped after chmod failure")
	}
}

func TestRunKeepsCommandLineOrder(t *testing.T) {
	tfs := filesystem.NewTestFileSystem()

	// a/b is processed first, exactly as given, and fails because a does
	// not exist yet; a is still created and the batch exits nonzero.
	res := runBatch(t, tfs, dirmake.Options{}, []string{"a/b", "a"})
	if !errors.Is(res.err, dirmake.ErrNotAllCreated) {
		t.Fatalf("Expected ErrNotAllCreated, got %v", res.err)
	}
	if !strings.Contains(res.stderr, "cannot create directory `a/b`") {
		t.Errorf("Expected a/b failure on stderr, got %q", res.stderr)
	}
	if _, err := tfs.Stat("a"); err != nil {
		t.Errorf("Expected a to be created, got %v", err)
	}
	if _, err := tfs.Stat("a/b"); err == nil {
		t.Errorf("Expected a/b not to be created")
	}
}

func TestRunSortOrdersRequestedAncestorsFirst(t *testing.T) {
	tfs := filesystem.NewTestFileSystem()

	// With --sort, a is created before a/b regardless of argument order.
	res := runBatch(t, tfs, dirmake.Options{Sort: true}, []string{"a/b", "a"})
	if res.err != nil {
		t.Fatalf("Run failed: %v", res.err)
	}
	for _, path := range []string{"a", "a/b"} {
		if _, err := tfs.Stat(path); err != nil {
			t.Errorf("Stat(%s) failed: %v", path, err)
		}
	}
}

func TestRunDryRun(t *testing.T) {
	t.Run("reports without creating", func(t *testing.T) {
		tfs := filesystem.NewTestFileSystem()

		res := runBatch(t, tfs, dirmake.Options{Parents: true, DryRun: true}, []string{"a/b"})
		if res.err != nil {
			t.Fatalf("Run failed: %v", res.err)
		}

		want := "created directory 'a'\n" +
			"created directory 'a/b'\n"
		if res.stdout != want {
			t.Errorf("Expected stdout %q, got %q", want, res.stdout)
		}
		if len(tfs.MapFS) != 0 {
			t.Errorf("Dry run must not create anything, filesystem has %d entries", len(tfs.MapFS))
		}
	})

	t.Run("predicts failures", func(t *testing.T) {
		tfs := filesystem.NewTestFileSystem()
		if err := tfs.Mkdir("a", 0o755); err != nil {
			t.Fatalf("Mkdir failed: %v", err)
		}

		res := runBatch(t, tfs, dirmake.Options{DryRun: true}, []string{"a"})
		if !errors.Is(res.err, dirmake.ErrNotAllCreated) {
			t.Fatalf("Expected ErrNotAllCreated, got %v", res.err)
		}
		if !strings.Contains(res.stderr, "cannot create directory `a`") {
			t.Errorf("Expected failure message on stderr, got %q", res.stderr)
		}
	})
}

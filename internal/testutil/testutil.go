// Package testutil fabricates the fake executables dispatcher tests need,
// chiefly backend tools and python interpreters.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteExecutable writes an executable script named name under dir and
// returns its path.
func WriteExecutable(t *testing.T, dir string, name string, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write executable %s: %v", name, err)
	}
	return path
}

// WriteInterpreter writes a fake interpreter that answers every invocation
// by printing version and exiting zero. Tests point PATH at it in place of
// a real python.
func WriteInterpreter(t *testing.T, dir string, name string, version string) string {
	t.Helper()
	return WriteExecutable(t, dir, name, fmt.Sprintf("#!/bin/sh\necho '%s'\nexit 0\n", version))
}

// PrependPath puts dir ahead of everything else on PATH for the duration of
// the test.
func PrependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

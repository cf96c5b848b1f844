package main

// NOTE: Tests in this package mutate package-level globals (rootFlag, getwd,
// isTerminal, executablePath and the injectable command runners). Do not use
// t.Parallel(). Each test must restore globals via t.Cleanup().

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/shimlab/toolshim/internal/config"
)

func setRootFlag(t *testing.T, dir string) {
	t.Helper()
	orig := rootFlag
	rootFlag = dir
	t.Cleanup(func() { rootFlag = orig })
}

func stubGetwd(t *testing.T, dir string) {
	t.Helper()
	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })
}

func stubTerminal(t *testing.T, interactive bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return interactive }
	t.Cleanup(func() { isTerminal = orig })
}

func stubExecutablePath(t *testing.T, path string, err error) {
	t.Helper()
	orig := executablePath
	executablePath = func() (string, error) { return path, err }
	t.Cleanup(func() { executablePath = orig })
}

// writeTreeFile creates a file under root with parent directories.
func writeTreeFile(t *testing.T, root string, rel string, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

func TestExplicitRootFlagWinsOverEnv(t *testing.T) {
	setRootFlag(t, "/opt/tree")
	t.Setenv(config.EnvRoot, "/env/tree")

	dir, found, err := explicitRoot()
	if err != nil {
		t.Fatalf("explicitRoot error: %v", err)
	}
	if !found || dir != "/opt/tree" {
		t.Fatalf("expected flag root, got %q found=%v", dir, found)
	}
}

func TestExplicitRootEnvFallback(t *testing.T) {
	setRootFlag(t, "")
	t.Setenv(config.EnvRoot, "/env/tree")

	dir, found, err := explicitRoot()
	if err != nil {
		t.Fatalf("explicitRoot error: %v", err)
	}
	if !found || dir != "/env/tree" {
		t.Fatalf("expected env root, got %q found=%v", dir, found)
	}
}

func TestExplicitRootExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	origCache := homedir.DisableCache
	homedir.DisableCache = true
	homedir.Reset()
	t.Cleanup(func() {
		homedir.DisableCache = origCache
		homedir.Reset()
	})

	setRootFlag(t, "~/trees/active")

	dir, found, err := explicitRoot()
	if err != nil {
		t.Fatalf("explicitRoot error: %v", err)
	}
	want := filepath.Join(home, "trees", "active")
	if !found || dir != want {
		t.Fatalf("expected %q, got %q found=%v", want, dir, found)
	}
}

func TestExplicitRootUnset(t *testing.T) {
	setRootFlag(t, "")
	t.Setenv(config.EnvRoot, "")

	_, found, err := explicitRoot()
	if err != nil {
		t.Fatalf("explicitRoot error: %v", err)
	}
	if found {
		t.Fatal("expected no explicit root")
	}
}

func TestResolveTreeRootWalksUp(t *testing.T) {
	tree := t.TempDir()
	writeTreeFile(t, tree, config.ManifestFileName, "")
	nested := filepath.Join(tree, "sub", "dir")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	setRootFlag(t, "")
	t.Setenv(config.EnvRoot, "")
	stubGetwd(t, nested)

	dir, err := resolveTreeRoot()
	if err != nil {
		t.Fatalf("resolveTreeRoot error: %v", err)
	}
	if dir != tree {
		t.Fatalf("expected %q, got %q", tree, dir)
	}
}

func TestResolveTreeRootMissing(t *testing.T) {
	setRootFlag(t, "")
	t.Setenv(config.EnvRoot, "")
	stubGetwd(t, t.TempDir())

	_, err := resolveTreeRoot()
	if err == nil {
		t.Fatal("expected error without a manifest")
	}
	if !strings.Contains(err.Error(), config.ManifestFileName) || !strings.Contains(err.Error(), config.EnvRoot) {
		t.Fatalf("expected error naming the manifest and env var, got %v", err)
	}
}

func TestResolveInitRootFallsBackToCwd(t *testing.T) {
	cwd := t.TempDir()
	setRootFlag(t, "")
	t.Setenv(config.EnvRoot, "")
	stubGetwd(t, cwd)

	dir, err := resolveInitRoot()
	if err != nil {
		t.Fatalf("resolveInitRoot error: %v", err)
	}
	if dir != cwd {
		t.Fatalf("expected cwd %q, got %q", cwd, dir)
	}
}

func TestResolveInitRootPrefersExistingTree(t *testing.T) {
	tree := t.TempDir()
	writeTreeFile(t, tree, config.ManifestFileName, "")
	nested := filepath.Join(tree, "bin")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	setRootFlag(t, "")
	t.Setenv(config.EnvRoot, "")
	stubGetwd(t, nested)

	dir, err := resolveInitRoot()
	if err != nil {
		t.Fatalf("resolveInitRoot error: %v", err)
	}
	if dir != tree {
		t.Fatalf("expected %q, got %q", tree, dir)
	}
}

package dispatch

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRealSystemReadFileHeader(t *testing.T) {
	dir := t.TempDir()
	sys := RealSystem{}

	full := filepath.Join(dir, "full")
	if err := os.WriteFile(full, []byte("abcdefghij"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := sys.ReadFileHeader(full, 4)
	if err != nil || string(got) != "abcd" {
		t.Fatalf("ReadFileHeader = (%q, %v), want abcd", got, err)
	}

	short := filepath.Join(dir, "short")
	if err := os.WriteFile(short, []byte("ab"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = sys.ReadFileHeader(short, 8)
	if err != nil || string(got) != "ab" {
		t.Fatalf("short file = (%q, %v), want ab without error", got, err)
	}

	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = sys.ReadFileHeader(empty, 8)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty file = (%q, %v), want empty without error", got, err)
	}

	if _, err := sys.ReadFileHeader(filepath.Join(dir, "missing"), 8); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRealSystemRun(t *testing.T) {
	dir := t.TempDir()
	sys := RealSystem{}

	ok := filepath.Join(dir, "ok.sh")
	if err := os.WriteFile(ok, []byte("#!/bin/sh\necho hello\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	code, err := sys.Run(ok, nil, []string{"PATH=/usr/bin:/bin"}, &out, io.Discard)
	if err != nil || code != 0 {
		t.Fatalf("Run = (%d, %v), want success", code, err)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Fatalf("stdout = %q", out.String())
	}

	fail := filepath.Join(dir, "fail.sh")
	if err := os.WriteFile(fail, []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	code, err = sys.Run(fail, nil, nil, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("non-zero exit should not be an error, got %v", err)
	}
	if code != 3 {
		t.Fatalf("code = %d, want 3", code)
	}

	if _, err := sys.Run(filepath.Join(dir, "missing"), nil, nil, io.Discard, io.Discard); err == nil {
		t.Fatal("expected spawn error for missing binary")
	}
}

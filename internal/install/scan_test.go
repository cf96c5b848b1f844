package install

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shimlab/toolshim/internal/config"
)

func writeTreeFiles(t *testing.T, root string, files ...string) config.Paths {
	t.Helper()
	paths := config.DefaultPaths(root)
	for _, file := range files {
		full := filepath.Join(root, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", file, err)
		}
		if err := os.WriteFile(full, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
	return paths
}

func TestScanEmptyTree(t *testing.T) {
	paths := config.DefaultPaths(t.TempDir())

	m, err := Scan(RealSystem{}, paths)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(m.Targets) != 0 {
		t.Fatalf("expected no targets, got %+v", m.Targets)
	}
}

func TestScanXtensaFamily(t *testing.T) {
	paths := writeTreeFiles(t, t.TempDir(),
		"lib/xtensa_esp32.so",
		"lib/xtensa_esp32s3.so",
		"bin/xtensa-esp-elf-gcc",
		"bin/xtensa-esp-elf-gcc-14.2.0",
		"bin/xtensa-esp-elf-ar",
		"bin/xtensa-esp-elf-gdb-3.11",
		"bin/xtensa-esp-elf-gdb-no-python",
		"bin/xtensa-esp-elf-gdb",
	)

	m, err := Scan(RealSystem{}, paths)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(m.Targets) != 1 {
		t.Fatalf("expected one target, got %+v", m.Targets)
	}
	target := m.Targets[0]
	if target.Arch != config.ArchXtensa {
		t.Fatalf("arch = %q", target.Arch)
	}
	if want := []string{"esp32", "esp32s3"}; !reflect.DeepEqual(target.Chips, want) {
		t.Fatalf("chips = %v, want %v", target.Chips, want)
	}
	if want := []string{"ar", "gcc", "gcc-14.2.0", "gdb"}; !reflect.DeepEqual(target.Tools, want) {
		t.Fatalf("tools = %v, want %v", target.Tools, want)
	}
}

func TestScanRISCVFamily(t *testing.T) {
	paths := writeTreeFiles(t, t.TempDir(),
		"bin/riscv32-esp-elf-as-xespv2p2",
		"bin/riscv32-esp-elf-as-xespv2p1",
		"bin/riscv32-esp-elf-ld-xespv2p1",
		"bin/riscv32-esp-elf-gdb-3.11",
		"bin/riscv32-esp-elf-as",
		"bin/riscv32-esp-elf-gdb",
	)

	m, err := Scan(RealSystem{}, paths)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(m.Targets) != 1 {
		t.Fatalf("expected one target, got %+v", m.Targets)
	}
	target := m.Targets[0]
	if target.Arch != config.ArchRISCV {
		t.Fatalf("arch = %q", target.Arch)
	}
	if want := []string{"esp"}; !reflect.DeepEqual(target.Chips, want) {
		t.Fatalf("chips = %v, want %v", target.Chips, want)
	}
	if want := []string{"as", "gdb", "ld"}; !reflect.DeepEqual(target.Tools, want) {
		t.Fatalf("tools = %v, want %v", target.Tools, want)
	}
}

func TestScanChipsWithoutToolsYieldsNoTarget(t *testing.T) {
	paths := writeTreeFiles(t, t.TempDir(), "lib/xtensa_esp32.so")

	m, err := Scan(RealSystem{}, paths)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(m.Targets) != 0 {
		t.Fatalf("expected no targets, got %+v", m.Targets)
	}
}

func TestScanIgnoresUnrelatedEntries(t *testing.T) {
	paths := writeTreeFiles(t, t.TempDir(),
		"bin/toolshim",
		"bin/toolshim.env",
		"bin/riscv32-esp-elf-objcopy",
		"lib/libwinpthread-1.dll",
		"lib/xtensa_.so",
	)

	m, err := Scan(RealSystem{}, paths)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(m.Targets) != 0 {
		t.Fatalf("expected no targets, got %+v", m.Targets)
	}
}

func TestScanResultValidates(t *testing.T) {
	paths := writeTreeFiles(t, t.TempDir(),
		"lib/xtensa_esp32.so",
		"bin/xtensa-esp-elf-gcc",
		"bin/riscv32-esp-elf-as-xespv2p2",
	)

	m, err := Scan(RealSystem{}, paths)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("scanned manifest should validate: %v", err)
	}
	want := []string{"xtensa-esp32-elf-gcc", "riscv32-esp-elf-as"}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
}

func TestScanStripsWindowsExtension(t *testing.T) {
	paths := writeTreeFiles(t, t.TempDir(),
		"lib/xtensa_esp32.so",
		"bin/xtensa-esp-elf-gcc.exe",
	)

	m, err := Scan(RealSystem{}, paths)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(m.Targets) != 1 || !reflect.DeepEqual(m.Targets[0].Tools, []string{"gcc"}) {
		t.Fatalf("unexpected scan result: %+v", m.Targets)
	}
}

func TestScanNilSystem(t *testing.T) {
	if _, err := Scan(nil, config.DefaultPaths(t.TempDir())); err == nil {
		t.Fatal("expected error for nil system")
	}
}

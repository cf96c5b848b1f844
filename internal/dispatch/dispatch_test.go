package dispatch

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestMaybeExecGuards(t *testing.T) {
	sys := &testSystem{}
	exit := func(int) {}

	if err := MaybeExecWithSystem(nil, []string{"toolshim"}, exit); err == nil {
		t.Fatal("expected error for nil system")
	}
	if err := MaybeExecWithSystem(sys, nil, exit); err == nil {
		t.Fatal("expected error for empty args")
	}
	if err := MaybeExecWithSystem(sys, []string{""}, exit); err == nil {
		t.Fatal("expected error for empty argv[0]")
	}
	if err := MaybeExecWithSystem(sys, []string{"toolshim"}, nil); err == nil {
		t.Fatal("expected error for nil exit handler")
	}
}

func TestMaybeExecIgnoresOwnName(t *testing.T) {
	// ExecBinaryFunc is unset: dispatching under the CLI name would fail the
	// test through errNotMocked.
	sys := &testSystem{}
	for _, argv0 := range []string{"toolshim", "/usr/local/bin/toolshim", "toolshim.exe", "gdb"} {
		if err := MaybeExecWithSystem(sys, []string{argv0, "install"}, func(int) {}); err != nil {
			t.Fatalf("MaybeExec(%q) = %v, want nil", argv0, err)
		}
	}
}

func TestMaybeExecHandsOff(t *testing.T) {
	root := writeTree(t, "bin/xtensa-esp-elf-gcc", "lib/xtensa_esp32.so")
	bin := filepath.Join(root, "bin")

	var gotPath string
	var gotArgs []string
	var gotEnv []string
	sys := &testSystem{
		EnvironFunc: fixedEnv("PATH=/usr/bin"),
		ExecBinaryFunc: func(path string, args []string, env []string, exit func(int)) error {
			gotPath, gotArgs, gotEnv = path, args, env
			return nil
		},
	}

	err := MaybeExecWithSystem(sys, []string{filepath.Join(bin, "xtensa-esp32-elf-gcc"), "-c", "main.c"}, func(int) {})
	if !errors.Is(err, ErrDispatched) {
		t.Fatalf("err = %v, want ErrDispatched", err)
	}

	wantPath := filepath.Join(bin, "xtensa-esp-elf-gcc")
	if gotPath != wantPath {
		t.Fatalf("exec path = %q, want %q", gotPath, wantPath)
	}
	wantArgs := []string{wantPath, "-mdynconfig=xtensa_esp32.so", "-c", "main.c"}
	if !reflect.DeepEqual(gotArgs, wantArgs) {
		t.Fatalf("exec args = %v, want %v", gotArgs, wantArgs)
	}
	if v, _ := envGet(gotEnv, EnvXtensaConfig); v != filepath.Join(root, "lib", "xtensa_esp32.so") {
		t.Fatalf("exec env %s = %q", EnvXtensaConfig, v)
	}
}

func TestMaybeExecWrapsExecFailure(t *testing.T) {
	root := writeTree(t, "bin/riscv32-esp-elf-as-xespv2p2")
	bin := filepath.Join(root, "bin")

	sys := &testSystem{
		EnvironFunc: fixedEnv(),
		ExecBinaryFunc: func(path string, args []string, env []string, exit func(int)) error {
			return errors.New("exec format error")
		},
	}

	err := MaybeExecWithSystem(sys, []string{filepath.Join(bin, "riscv32-esp-elf-as")}, func(int) {})
	if err == nil || !strings.Contains(err.Error(), "exec format error") {
		t.Fatalf("err = %v, want wrapped exec failure", err)
	}
	if !strings.Contains(err.Error(), "riscv32-esp-elf-as-xespv2p2") {
		t.Fatalf("err = %v, want backend path", err)
	}
}

func TestResolveGuards(t *testing.T) {
	if _, err := Resolve(nil, []string{"x"}); err == nil {
		t.Fatal("expected error for nil system")
	}
	if _, err := Resolve(&testSystem{}, nil); err == nil {
		t.Fatal("expected error for empty args")
	}
}

func TestResolveRejectsCLIName(t *testing.T) {
	sys := &testSystem{EnvironFunc: fixedEnv()}
	_, err := Resolve(sys, []string{"/opt/tree/bin/toolshim"})
	if err == nil || !strings.Contains(err.Error(), "unrecognized tool name") {
		t.Fatalf("err = %v, want unrecognized name", err)
	}
}

func TestResolveBareNameUsesLookPath(t *testing.T) {
	root := writeTree(t, "bin/riscv32-esp-elf-as-xespv2p2")
	bin := filepath.Join(root, "bin")

	sys := &testSystem{
		EnvironFunc: fixedEnv(),
		LookPathFunc: func(name string) (string, error) {
			if name != "riscv32-esp-elf-as" {
				t.Fatalf("LookPath(%q)", name)
			}
			return filepath.Join(bin, name), nil
		},
	}

	plan, err := Resolve(sys, []string{"riscv32-esp-elf-as"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(bin, "riscv32-esp-elf-as-xespv2p2"); plan.Backend != want {
		t.Fatalf("Backend = %q, want %q", plan.Backend, want)
	}
}

func TestResolveBareNameFallsBackToExecutable(t *testing.T) {
	root := writeTree(t, "bin/riscv32-esp-elf-as-xespv2p2")
	bin := filepath.Join(root, "bin")

	sys := &testSystem{
		EnvironFunc:    fixedEnv(),
		LookPathFunc:   func(string) (string, error) { return "", errors.New("not in PATH") },
		ExecutableFunc: func() (string, error) { return filepath.Join(bin, "riscv32-esp-elf-as"), nil },
	}

	plan, err := Resolve(sys, []string{"riscv32-esp-elf-as"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(bin, "riscv32-esp-elf-as-xespv2p2"); plan.Backend != want {
		t.Fatalf("Backend = %q, want %q", plan.Backend, want)
	}
}

func TestResolveLocateFailure(t *testing.T) {
	sys := &testSystem{
		EnvironFunc:    fixedEnv(),
		LookPathFunc:   func(string) (string, error) { return "", errors.New("not in PATH") },
		ExecutableFunc: func() (string, error) { return "", errors.New("no proc") },
	}
	_, err := Resolve(sys, []string{"riscv32-esp-elf-as"})
	if err == nil || !strings.Contains(err.Error(), "locate invoked binary") {
		t.Fatalf("err = %v, want locate failure", err)
	}
}

func TestResolveShortPathRoundTrip(t *testing.T) {
	root := writeTree(t, "bin/riscv32-esp-elf-as-xespv2p2")
	bin := filepath.Join(root, "bin")
	invoked := filepath.Join(bin, "RISCV3~1")
	long := filepath.Join(bin, "riscv32-esp-elf-as")
	backendLong := filepath.Join(bin, "riscv32-esp-elf-as-xespv2p2")
	backendShort := filepath.Join(bin, "RISCV3~2")

	sys := &testSystem{
		EnvironFunc: fixedEnv(),
		LongPathNameFunc: func(p string) (string, error) {
			if p == invoked {
				return long, nil
			}
			return p, nil
		},
		ShortPathNameFunc: func(p string) (string, error) {
			switch p {
			case invoked:
				return invoked, nil
			case backendLong:
				return backendShort, nil
			}
			return p, nil
		},
	}

	plan, err := Resolve(sys, []string{invoked, "start.S"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if plan.Backend != backendShort {
		t.Fatalf("Backend = %q, want short form %q", plan.Backend, backendShort)
	}
	if plan.Argv[0] != backendShort {
		t.Fatalf("Argv[0] = %q, want short form", plan.Argv[0])
	}
}

func TestResolveAppliesOverlayBeforePolicy(t *testing.T) {
	root := writeTree(t, "bin/xtensa-esp-elf-gcc", "lib/xtensa_esp32.so")
	bin := filepath.Join(root, "bin")
	if err := os.WriteFile(filepath.Join(root, overlayFileName), []byte("TOOL_OPT=fast\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sys := &testSystem{EnvironFunc: fixedEnv("PATH=/usr/bin")}
	plan, err := Resolve(sys, []string{filepath.Join(bin, "xtensa-esp32-elf-gcc")})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if v, _ := envGet(plan.Env, "TOOL_OPT"); v != "fast" {
		t.Fatalf("TOOL_OPT = %q, want overlay value", v)
	}
	if len(plan.Delta) != 2 || plan.Delta[0].Key != "TOOL_OPT" || plan.Delta[1].Key != EnvXtensaConfig {
		t.Fatalf("Delta = %v, want overlay before policy", plan.Delta)
	}
}

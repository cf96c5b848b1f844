package dispatch

import "strings"

// Kind classifies an invocation name into a tool family.
type Kind int

const (
	// KindCLI is the management surface reached under the binary's own name.
	KindCLI Kind = iota
	// KindToolchain is an xtensa cross-compiler tool.
	KindToolchain
	// KindBinutils is a riscv32 binutils tool with variant-suffixed backends.
	KindBinutils
	// KindDebugger is a gdb frontend with python-dependent backends.
	KindDebugger
)

// Identity is the parsed form of the name a dispatcher was invoked under.
type Identity struct {
	// Name is the invocation basename with any .exe extension removed.
	Name string
	// Ext is ".exe" when the invocation name carried it, otherwise "".
	Ext  string
	Kind Kind
}

const (
	exeSuffix = ".exe"
	selfName  = "toolshim"
)

// splitExt separates a trailing .exe from name. Only .exe counts as an
// extension; dotted tool names such as gcc-14.2.0 keep their dots.
func splitExt(name string) (stem, ext string) {
	if strings.HasSuffix(name, exeSuffix) {
		return strings.TrimSuffix(name, exeSuffix), exeSuffix
	}
	return name, ""
}

// IsToolName reports whether base names a dispatched tool rather than the
// management CLI.
func IsToolName(base string) bool {
	stem, _ := splitExt(base)
	return stem != selfName && strings.Contains(stem, "-")
}

// Classify derives the tool family from the shape of base alone. The gdb
// check runs first so xtensa debuggers land on the debugger path.
func Classify(base string) Identity {
	stem, ext := splitExt(base)
	id := Identity{Name: stem, Ext: ext, Kind: KindCLI}
	if stem == selfName || !strings.Contains(stem, "-") {
		return id
	}
	segs := strings.Split(stem, "-")
	switch {
	case segs[len(segs)-1] == "gdb":
		id.Kind = KindDebugger
	case segs[0] == "xtensa":
		id.Kind = KindToolchain
	default:
		id.Kind = KindBinutils
	}
	return id
}

// DefaultBackendName returns the base name of the backend a dispatch of name
// selects absent variant arguments and python runtimes: the chip-neutral
// backend for toolchain tools, the newest variant for binutils, and the
// reduced debugger build. ok is false when name would not dispatch cleanly.
func DefaultBackendName(name string) (string, bool) {
	id := Classify(name)
	switch id.Kind {
	case KindToolchain:
		segs := strings.Split(id.Name, "-")
		if len(segs) < 4 || segs[1] == "" || segs[1] == reservedChip || segs[2] != "elf" {
			return "", false
		}
		tool := strings.Join(segs[3:], "-")
		if tool == "" {
			return "", false
		}
		return xtensaBackendPrefix + tool, true
	case KindBinutils:
		return id.Name + "-" + variantSuffixes[0], true
	case KindDebugger:
		return DebuggerBackendName(id.Name, NoPythonSuffix)
	}
	return "", false
}

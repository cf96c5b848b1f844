package dispatch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shimlab/toolshim/internal/messages"
)

const (
	// EnvXtensaConfig tells backends where the chip support library lives.
	EnvXtensaConfig = "XTENSA_GNU_CONFIG"

	// xtensaBackendPrefix names the chip-neutral backend family shared by
	// every xtensa chip.
	xtensaBackendPrefix = "xtensa-esp-elf-"
	// reservedChip is the neutral chip marker and never a valid target.
	reservedChip = "esp"

	dynconfigDirName = "lib"
	dynconfigFmt     = "xtensa_%s.so"
	dynconfigFlagFmt = "-mdynconfig=xtensa_%s.so"
)

// resolveToolchain maps an xtensa-<chip>-elf-<tool> invocation onto the
// chip-neutral backend, pointing it at the chip's dynconfig library through
// the environment and, for compiler drivers, the command line.
func (r *resolution) resolveToolchain() (*Plan, error) {
	segs := strings.Split(r.id.Name, "-")
	if len(segs) < 4 || segs[0] != "xtensa" || segs[1] == "" || segs[2] != "elf" {
		return nil, fmt.Errorf(messages.DispatchXtensaNamePatternFmt, r.id.Name)
	}
	chip := segs[1]
	if chip == reservedChip {
		return nil, fmt.Errorf(messages.DispatchXtensaReservedChip)
	}
	tool := strings.Join(segs[3:], "-")
	if tool == "" {
		return nil, fmt.Errorf(messages.DispatchXtensaNamePatternFmt, r.id.Name)
	}

	backend := filepath.Join(r.binDir, xtensaBackendPrefix+tool+r.id.Ext)
	if _, err := r.sys.Stat(backend); err != nil {
		return nil, fmt.Errorf(messages.DispatchBackendMissingFmt, backend)
	}
	dynconfig := dynconfigPath(r.binDir, chip)
	if _, err := r.sys.Stat(dynconfig); err != nil {
		return nil, fmt.Errorf(messages.DispatchDynconfigMissingFmt, chip, dynconfig)
	}
	r.env.set(EnvXtensaConfig, dynconfig)

	backend = r.shortIfNeeded(backend)
	argv := append([]string{backend}, r.args[1:]...)
	if isCompilerTool(tool) {
		argv = insertArg(argv, fmt.Sprintf(dynconfigFlagFmt, chip))
	}
	return r.plan(backend, argv), nil
}

// dynconfigPath locates the chip support library relative to the bin
// directory, in the sibling lib directory.
func dynconfigPath(binDir, chip string) string {
	return filepath.Join(filepath.Dir(binDir), dynconfigDirName, DynconfigName(chip))
}

// DynconfigName returns the file name of the dynamic configuration library
// for chip, as expected under the toolchain lib directory.
func DynconfigName(chip string) string {
	return fmt.Sprintf(dynconfigFmt, chip)
}

// isCompilerTool reports whether tool invokes a compiler driver, the only
// family members that accept -mdynconfig on the command line. Versioned
// drivers such as gcc-14.2.0 count.
func isCompilerTool(tool string) bool {
	switch tool {
	case "cc", "gcc", "g++", "c++":
		return true
	}
	rest, ok := strings.CutPrefix(tool, "gcc-")
	return ok && rest != "" && rest[0] >= '0' && rest[0] <= '9'
}

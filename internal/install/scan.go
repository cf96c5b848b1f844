package install

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/dispatch"
	"github.com/shimlab/toolshim/internal/messages"
)

const (
	xtensaBackendPrefix = "xtensa-esp-elf-"
	riscvBackendPrefix  = "riscv32-esp-elf-"
	dynconfigPrefix     = "xtensa_"
	dynconfigSuffix     = ".so"
	debuggerToolPrefix  = "gdb-"
)

// Scan derives a manifest from the backends already present in the tree:
// xtensa chips from lib/xtensa_<chip>.so, xtensa tools from chip-neutral
// bin/xtensa-esp-elf-* backends, and riscv32 tools from variant-suffixed
// bin/riscv32-esp-elf-* backends. The result may be empty when the tree has
// nothing to manage.
func Scan(sys System, paths config.Paths) (*config.Manifest, error) {
	if sys == nil {
		return nil, errors.New(messages.InstallSystemRequired)
	}
	chips, err := scanXtensaChips(sys, paths.LibDir)
	if err != nil {
		return nil, err
	}
	xtensaTools, err := scanBackendTools(sys, paths.BinDir, xtensaBackendPrefix, false)
	if err != nil {
		return nil, err
	}
	riscvTools, err := scanBackendTools(sys, paths.BinDir, riscvBackendPrefix, true)
	if err != nil {
		return nil, err
	}

	m := &config.Manifest{}
	if len(chips) > 0 && len(xtensaTools) > 0 {
		m.Targets = append(m.Targets, config.Target{Arch: config.ArchXtensa, Chips: chips, Tools: xtensaTools})
	}
	if len(riscvTools) > 0 {
		m.Targets = append(m.Targets, config.Target{Arch: config.ArchRISCV, Chips: []string{"esp"}, Tools: riscvTools})
	}
	return m, nil
}

// scanXtensaChips lists the chips with a configuration object under lib/.
func scanXtensaChips(sys System, libDir string) ([]string, error) {
	entries, err := sys.ReadDir(libDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ScanReadDirFailedFmt, libDir, err)
	}
	var chips []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rest, ok := strings.CutPrefix(entry.Name(), dynconfigPrefix)
		if !ok {
			continue
		}
		chip, ok := strings.CutSuffix(rest, dynconfigSuffix)
		if !ok || chip == "" {
			continue
		}
		chips = append(chips, chip)
	}
	sort.Strings(chips)
	return chips, nil
}

// scanBackendTools recovers tool names from the backends under bin/ that
// carry the given family prefix. With variantSuffixed set, only entries
// ending in a known variant suffix count, and the suffix is stripped;
// otherwise the remainder after the prefix is the tool. Debugger backends
// (gdb-<runtime suffix>) collapse to the single tool gdb in both modes.
func scanBackendTools(sys System, binDir string, prefix string, variantSuffixed bool) ([]string, error) {
	entries, err := sys.ReadDir(binDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ScanReadDirFailedFmt, binDir, err)
	}
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".exe")
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		tool, ok := backendTool(rest, variantSuffixed)
		if !ok {
			continue
		}
		seen[tool] = struct{}{}
	}
	tools := make([]string, 0, len(seen))
	for tool := range seen {
		tools = append(tools, tool)
	}
	sort.Strings(tools)
	return tools, nil
}

// backendTool maps the post-prefix remainder of a backend name to a tool.
func backendTool(rest string, variantSuffixed bool) (string, bool) {
	if strings.HasPrefix(rest, debuggerToolPrefix) {
		return "gdb", true
	}
	if rest == "gdb" {
		// A bare gdb entry is a dispatcher link, not a runtime-suffixed backend.
		return "", false
	}
	if !variantSuffixed {
		return rest, true
	}
	for _, suffix := range dispatch.BinutilsVariants() {
		if tool, ok := strings.CutSuffix(rest, "-"+suffix); ok && tool != "" {
			return tool, true
		}
	}
	return "", false
}

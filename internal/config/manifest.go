// Package config models the toolshim.toml manifest describing which
// dispatcher names a toolchain tree installs.
package config

import (
	"fmt"
	"strings"

	"github.com/shimlab/toolshim/internal/messages"
)

// Arch values accepted in the manifest.
const (
	ArchXtensa = "xtensa"
	ArchRISCV  = "riscv32"
)

// reservedChip collides with the chip-neutral backend naming and is rejected
// for xtensa targets. riscv32 targets use it as their regular chip segment.
const reservedChip = "esp"

// Manifest lists the tool families an installation manages.
type Manifest struct {
	Targets []Target `toml:"target"`
}

// Target crosses an architecture with its chips and tools; every combination
// yields one dispatcher name.
type Target struct {
	Arch  string   `toml:"arch"`
	Chips []string `toml:"chips"`
	Tools []string `toml:"tools"`
}

// ToolName builds the canonical dispatcher name for one combination.
func ToolName(arch, chip, tool string) string {
	return fmt.Sprintf("%s-%s-elf-%s", arch, chip, tool)
}

// Names expands the manifest into dispatcher names, in declaration order.
func (m *Manifest) Names() []string {
	var names []string
	for _, t := range m.Targets {
		for _, chip := range t.Chips {
			for _, tool := range t.Tools {
				names = append(names, ToolName(t.Arch, chip, tool))
			}
		}
	}
	return names
}

// Validate checks structural rules and name uniqueness.
func (m *Manifest) Validate() error {
	if len(m.Targets) == 0 {
		return fmt.Errorf(messages.ConfigNoTargets)
	}
	seen := make(map[string]struct{})
	for i, t := range m.Targets {
		if t.Arch != ArchXtensa && t.Arch != ArchRISCV {
			return fmt.Errorf(messages.ConfigTargetArchFmt, i, strings.Join([]string{ArchXtensa, ArchRISCV}, ", "), t.Arch)
		}
		if len(t.Chips) == 0 {
			return fmt.Errorf(messages.ConfigTargetNoChipsFmt, i, t.Arch)
		}
		if len(t.Tools) == 0 {
			return fmt.Errorf(messages.ConfigTargetNoToolsFmt, i, t.Arch)
		}
		for _, chip := range t.Chips {
			if chip == "" {
				return fmt.Errorf(messages.ConfigTargetEmptyChipFmt, i, t.Arch)
			}
			if strings.ContainsAny(chip, `/\`) {
				return fmt.Errorf(messages.ConfigTargetSeparatorFmt, i, t.Arch, chip)
			}
			if t.Arch == ArchXtensa && chip == reservedChip {
				return fmt.Errorf(messages.ConfigTargetReservedChipFmt, i, t.Arch)
			}
		}
		for _, tool := range t.Tools {
			if tool == "" {
				return fmt.Errorf(messages.ConfigTargetEmptyToolFmt, i, t.Arch)
			}
			if strings.ContainsAny(tool, `/\`) {
				return fmt.Errorf(messages.ConfigTargetSeparatorFmt, i, t.Arch, tool)
			}
		}
		for _, chip := range t.Chips {
			for _, tool := range t.Tools {
				name := ToolName(t.Arch, chip, tool)
				if _, dup := seen[name]; dup {
					return fmt.Errorf(messages.ConfigDuplicateNameFmt, name)
				}
				seen[name] = struct{}{}
			}
		}
	}
	return nil
}

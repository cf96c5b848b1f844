// Package install manages the dispatcher link farm of a toolchain tree:
// one link per manifest name in bin/, each pointing at the toolshim binary,
// plus removal of the links it owns and manifest generation from an
// already-populated tree.
package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/messages"
)

// selfBinaryName is the basename a link target must have for uninstall to
// claim the link when it does not point at the running binary.
const selfBinaryName = "toolshim"

// Options controls link farm changes.
type Options struct {
	Binary   string // path of the dispatcher binary new links point at
	Force    bool
	DryRun   bool
	Prompter Prompter
	Out      io.Writer
	System   System
}

type actionKind int

const (
	actionLink actionKind = iota
	actionKeep
	actionReplace
	actionSkip
	actionRemove
)

type linkStep struct {
	name string
	path string
	kind actionKind
}

type installer struct {
	paths    config.Paths
	binary   string
	force    bool
	prompter Prompter
	out      io.Writer
	sys      System
}

func newInstaller(paths config.Paths, opts Options) (*installer, error) {
	if paths.Root == "" {
		return nil, errors.New(messages.InstallRootRequired)
	}
	if opts.System == nil {
		return nil, errors.New(messages.InstallSystemRequired)
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &installer{
		paths:    paths,
		binary:   opts.Binary,
		force:    opts.Force,
		prompter: opts.Prompter,
		out:      out,
		sys:      opts.System,
	}, nil
}

// Install creates one dispatcher link per name in bin/, pointing at the
// configured binary. Entries already linking to the binary are kept; anything
// else is replaced only after confirmation or with force. Concurrent installs
// into one tree are serialized through the tree's lock file.
func Install(paths config.Paths, names []string, opts Options) error {
	inst, err := newInstaller(paths, opts)
	if err != nil {
		return err
	}
	if inst.binary == "" {
		return errors.New(messages.InstallBinaryRequired)
	}
	if opts.DryRun {
		plan, err := inst.installPlan(names)
		if err != nil {
			return err
		}
		inst.printPlan(plan)
		_, _ = fmt.Fprintln(inst.out, messages.InstallDryRunNotice)
		return nil
	}
	if err := inst.sys.MkdirAll(paths.BinDir, 0o755); err != nil {
		return fmt.Errorf(messages.InstallCreateDirFailedFmt, paths.BinDir, err)
	}
	return withFileLock(paths.LockFile, func() error {
		return inst.runInstall(names)
	})
}

func (inst *installer) runInstall(names []string) error {
	plan, err := inst.installPlan(names)
	if err != nil {
		return err
	}
	plan, err = inst.confirmReplacements(plan)
	if err != nil {
		return err
	}
	inst.printPlan(plan)
	linked := 0
	for _, st := range plan {
		switch st.kind {
		case actionReplace:
			if err := inst.sys.Remove(st.path); err != nil {
				return fmt.Errorf(messages.InstallRemoveFailedFmt, st.path, err)
			}
			if err := inst.sys.Symlink(inst.binary, st.path); err != nil {
				return fmt.Errorf(messages.InstallLinkFailedFmt, st.path, err)
			}
			linked++
		case actionLink:
			if err := inst.sys.Symlink(inst.binary, st.path); err != nil {
				return fmt.Errorf(messages.InstallLinkFailedFmt, st.path, err)
			}
			linked++
		}
	}
	_, _ = fmt.Fprintf(inst.out, messages.InstallDoneFmt, linked, inst.paths.BinDir)
	return nil
}

func (inst *installer) installPlan(names []string) ([]linkStep, error) {
	steps := make([]linkStep, 0, len(names))
	for _, name := range names {
		entry := name + LinkExt()
		path := filepath.Join(inst.paths.BinDir, entry)
		kind, err := inst.classifyEntry(path)
		if err != nil {
			return nil, err
		}
		steps = append(steps, linkStep{name: entry, path: path, kind: kind})
	}
	return steps, nil
}

// classifyEntry decides what install must do with one bin/ entry.
func (inst *installer) classifyEntry(path string) (actionKind, error) {
	info, err := inst.sys.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return actionLink, nil
	}
	if err != nil {
		return 0, fmt.Errorf(messages.InstallReadEntryFailedFmt, path, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := inst.sys.Readlink(path)
		if err != nil {
			return 0, fmt.Errorf(messages.InstallReadEntryFailedFmt, path, err)
		}
		if filepath.Clean(target) == filepath.Clean(inst.binary) {
			return actionKeep, nil
		}
	}
	return actionReplace, nil
}

// confirmReplacements asks once for all foreign entries. Declining keeps them
// in place and downgrades their steps to skips; the rest of the install still
// runs.
func (inst *installer) confirmReplacements(plan []linkStep) ([]linkStep, error) {
	var foreign []string
	for _, st := range plan {
		if st.kind == actionReplace {
			foreign = append(foreign, st.path)
		}
	}
	if len(foreign) == 0 || inst.force {
		return plan, nil
	}
	if inst.prompter == nil {
		return nil, errors.New(messages.InstallPromptRequiresTerminal)
	}
	ok, err := inst.prompter.OverwriteAll(foreign)
	if err != nil {
		return nil, err
	}
	if !ok {
		for i := range plan {
			if plan[i].kind == actionReplace {
				plan[i].kind = actionSkip
			}
		}
	}
	return plan, nil
}

func (inst *installer) printPlan(plan []linkStep) {
	for _, st := range plan {
		switch st.kind {
		case actionLink:
			_, _ = fmt.Fprintf(inst.out, messages.InstallPlanLinkFmt, st.name, inst.binary)
		case actionReplace:
			_, _ = fmt.Fprintf(inst.out, messages.InstallPlanReplaceFmt, st.name, inst.binary)
		case actionKeep:
			_, _ = fmt.Fprintf(inst.out, messages.InstallPlanKeepFmt, st.name)
		case actionSkip:
			_, _ = fmt.Fprintf(inst.out, messages.InstallPlanSkipFmt, st.name)
		case actionRemove:
			_, _ = fmt.Fprintf(inst.out, messages.InstallPlanRemoveFmt, st.name)
		}
	}
}

// ownedTarget reports whether a link target identifies a toolshim binary,
// either the exact binary configured for this run or any file named toolshim.
func ownedTarget(target string, binary string) bool {
	if binary != "" && filepath.Clean(target) == filepath.Clean(binary) {
		return true
	}
	return IsToolshimTarget(target)
}

// IsToolshimTarget reports whether a symlink target names a toolshim binary,
// regardless of where it lives. Health checks use this to tell our dispatcher
// links from foreign entries.
func IsToolshimTarget(target string) bool {
	base := strings.TrimSuffix(filepath.Base(target), ".exe")
	return base == selfBinaryName
}

// LinkExt returns the extension dispatcher links carry on this platform.
func LinkExt() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

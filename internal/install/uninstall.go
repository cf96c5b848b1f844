package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/messages"
)

// Uninstall removes the named dispatcher links from bin/. Only entries that
// are symlinks pointing at a toolshim binary are removed; anything else is
// reported and kept.
func Uninstall(paths config.Paths, names []string, opts Options) error {
	inst, err := newInstaller(paths, opts)
	if err != nil {
		return err
	}
	if _, err := inst.sys.Stat(paths.BinDir); errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(inst.out, messages.UninstallNothing)
		return nil
	}
	if opts.DryRun {
		plan, err := inst.uninstallPlan(names)
		if err != nil {
			return err
		}
		inst.printPlan(plan)
		_, _ = fmt.Fprintln(inst.out, messages.InstallDryRunNotice)
		return nil
	}
	return withFileLock(paths.LockFile, func() error {
		return inst.runUninstall(names)
	})
}

func (inst *installer) runUninstall(names []string) error {
	plan, err := inst.uninstallPlan(names)
	if err != nil {
		return err
	}
	inst.printPlan(plan)
	removed := 0
	for _, st := range plan {
		if st.kind != actionRemove {
			continue
		}
		if err := inst.sys.Remove(st.path); err != nil {
			return fmt.Errorf(messages.InstallRemoveFailedFmt, st.path, err)
		}
		removed++
	}
	if removed == 0 {
		_, _ = fmt.Fprintln(inst.out, messages.UninstallNothing)
		return nil
	}
	_, _ = fmt.Fprintf(inst.out, messages.UninstallDoneFmt, removed, inst.paths.BinDir)
	return nil
}

func (inst *installer) uninstallPlan(names []string) ([]linkStep, error) {
	steps := make([]linkStep, 0, len(names))
	for _, name := range names {
		entry := name + LinkExt()
		path := filepath.Join(inst.paths.BinDir, entry)
		info, err := inst.sys.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf(messages.InstallReadEntryFailedFmt, path, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			steps = append(steps, linkStep{name: entry, path: path, kind: actionSkip})
			continue
		}
		target, err := inst.sys.Readlink(path)
		if err != nil {
			return nil, fmt.Errorf(messages.InstallReadEntryFailedFmt, path, err)
		}
		if !ownedTarget(target, inst.binary) {
			steps = append(steps, linkStep{name: entry, path: path, kind: actionSkip})
			continue
		}
		steps = append(steps, linkStep{name: entry, path: path, kind: actionRemove})
	}
	return steps, nil
}

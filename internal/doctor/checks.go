// Package doctor inspects a toolchain tree and reports findings without
// mutating anything. Each check returns Results the command layer renders.
package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/dispatch"
	"github.com/shimlab/toolshim/internal/envfile"
	"github.com/shimlab/toolshim/internal/install"
	"github.com/shimlab/toolshim/internal/messages"
)

var (
	loadManifestFunc        = config.LoadManifest
	loadManifestLenientFunc = config.LoadManifestLenient
	probePythonFunc         = dispatch.ProbePython
)

// CheckRoot verifies the tree layout. A missing bin directory is fatal; a
// missing lib directory only degrades xtensa targets, so it warns.
func CheckRoot(paths config.Paths) []Result {
	var results []Result

	info, err := os.Stat(paths.BinDir)
	switch {
	case err != nil:
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameRoot,
			Message:        fmt.Sprintf(messages.DoctorMissingBinDirFmt, paths.BinDir),
			Recommendation: messages.DoctorMissingBinDirRecommend,
		})
	case !info.IsDir():
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameRoot,
			Message:        fmt.Sprintf(messages.DoctorPathNotDirFmt, paths.BinDir),
			Recommendation: messages.DoctorMissingBinDirRecommend,
		})
	default:
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameRoot,
			Message:   fmt.Sprintf(messages.DoctorBinDirOKFmt, paths.BinDir),
		})
	}

	info, err = os.Stat(paths.LibDir)
	switch {
	case err != nil:
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameRoot,
			Message:        fmt.Sprintf(messages.DoctorMissingLibDirFmt, paths.LibDir),
			Recommendation: messages.DoctorMissingLibDirRecommend,
		})
	case !info.IsDir():
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameRoot,
			Message:        fmt.Sprintf(messages.DoctorPathNotDirFmt, paths.LibDir),
			Recommendation: messages.DoctorMissingLibDirRecommend,
		})
	default:
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameRoot,
			Message:   fmt.Sprintf(messages.DoctorLibDirOKFmt, paths.LibDir),
		})
	}
	return results
}

// CheckManifest loads the manifest. When strict loading fails on validation,
// it falls back to a lenient load and returns the partial manifest so the
// remaining checks can still run against it.
func CheckManifest(paths config.Paths) ([]Result, *config.Manifest) {
	var results []Result
	m, err := loadManifestFunc(paths.Manifest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameManifest,
				Message:        fmt.Sprintf(messages.DoctorManifestMissingFmt, paths.Manifest),
				Recommendation: messages.DoctorManifestMissingRecommend,
			})
			return results, nil
		}
		if !errors.Is(err, config.ErrManifestValidation) {
			// Syntax or filesystem failure. The lenient loader would hit the
			// same wall, so report and stop here.
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameManifest,
				Message:        fmt.Sprintf(messages.DoctorManifestLoadFailedFmt, err),
				Recommendation: messages.DoctorManifestLoadRecommend,
			})
			return results, nil
		}

		lenient, lenientErr := loadManifestLenientFunc(paths.Manifest)
		if lenientErr != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameManifest,
				Message:        fmt.Sprintf(messages.DoctorManifestLoadFailedFmt, lenientErr),
				Recommendation: messages.DoctorManifestLoadRecommend,
			})
			return results, nil
		}
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameManifest,
			Message:        fmt.Sprintf(messages.DoctorManifestLoadFailedFmt, err),
			Recommendation: messages.DoctorManifestLenientRecommend,
		})
		return results, lenient
	}

	results = append(results, Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameManifest,
		Message:   fmt.Sprintf(messages.DoctorManifestLoadedFmt, len(m.Names())),
	})
	return results, m
}

// CheckLinks verifies that every manifest name has a dispatcher link under
// bin/ pointing at a toolshim binary. Links aimed at a toolshim other than
// binary still dispatch, so they only warn.
func CheckLinks(paths config.Paths, m *config.Manifest, binary string) []Result {
	if m == nil {
		return nil
	}
	var results []Result
	names := m.Names()
	clean := 0
	for _, name := range names {
		path := filepath.Join(paths.BinDir, name+install.LinkExt())
		info, err := os.Lstat(path)
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameLinks,
				Message:        fmt.Sprintf(messages.DoctorLinkMissingFmt, name),
				Recommendation: messages.DoctorLinkMissingRecommend,
			})
			continue
		}
		if info.Mode()&os.ModeSymlink == 0 {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameLinks,
				Message:        fmt.Sprintf(messages.DoctorLinkForeignFmt, name),
				Recommendation: messages.DoctorLinkForeignRecommend,
			})
			continue
		}
		target, err := os.Readlink(path)
		if err != nil || !install.IsToolshimTarget(target) {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameLinks,
				Message:        fmt.Sprintf(messages.DoctorLinkForeignFmt, name),
				Recommendation: messages.DoctorLinkForeignRecommend,
			})
			continue
		}
		if binary != "" && filepath.Clean(target) != filepath.Clean(binary) {
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameLinks,
				Message:        fmt.Sprintf(messages.DoctorLinkStaleFmt, name, target),
				Recommendation: messages.DoctorLinkStaleRecommend,
			})
			continue
		}
		clean++
	}
	if len(names) > 0 && clean == len(names) {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameLinks,
			Message:   fmt.Sprintf(messages.DoctorLinksOKFmt, clean),
		})
	}
	return results
}

// CheckBackends verifies the backend each manifest name resolves to by
// default: the chip-neutral tool for xtensa, the newest variant for riscv32
// binutils, and the reduced build for debuggers. With a python version from
// CheckPython it also flags debugger families that would silently fall back
// to their reduced build, and it checks the readelf companion objdump shells
// out to during object scanning.
func CheckBackends(paths config.Paths, m *config.Manifest, pythonVersion string) []Result {
	if m == nil {
		return nil
	}
	needed := make(map[string]string)
	var order []string
	for _, name := range m.Names() {
		base, ok := dispatch.DefaultBackendName(name)
		if !ok {
			continue
		}
		if _, dup := needed[base]; dup {
			continue
		}
		needed[base] = name
		order = append(order, base)
	}

	var results []Result
	for _, base := range order {
		path := filepath.Join(paths.BinDir, base+install.LinkExt())
		if _, err := os.Stat(path); err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameBackends,
				Message:        fmt.Sprintf(messages.DoctorBackendMissingFmt, needed[base], path),
				Recommendation: messages.DoctorBackendMissingRecommend,
			})
		}
	}
	results = append(results, checkDebuggerVariants(paths, m, pythonVersion)...)
	results = append(results, checkCompanions(paths, m)...)

	if len(results) == 0 && len(order) > 0 {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameBackends,
			Message:   fmt.Sprintf(messages.DoctorBackendsOKFmt, len(order)),
		})
	}
	return results
}

// checkDebuggerVariants warns when a python runtime is on the host but a
// debugger family only ships its reduced backend.
func checkDebuggerVariants(paths config.Paths, m *config.Manifest, version string) []Result {
	if version == "" {
		return nil
	}
	var results []Result
	seen := make(map[string]struct{})
	for _, name := range m.Names() {
		base, ok := dispatch.DebuggerBackendName(name, version)
		if !ok {
			continue
		}
		if _, dup := seen[base]; dup {
			continue
		}
		seen[base] = struct{}{}
		if _, err := os.Stat(filepath.Join(paths.BinDir, base+install.LinkExt())); err == nil {
			continue
		}
		reduced, _ := dispatch.DebuggerBackendName(name, dispatch.NoPythonSuffix)
		if _, err := os.Stat(filepath.Join(paths.BinDir, reduced+install.LinkExt())); err != nil {
			// The reduced build is missing too and already reported above.
			continue
		}
		results = append(results, Result{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameBackends,
			Message:   fmt.Sprintf(messages.DoctorBackendReducedFmt, name, reduced),
		})
	}
	return results
}

// checkCompanions verifies the readelf sibling that variant detection spawns
// for riscv32 objdump invocations with object file operands.
func checkCompanions(paths config.Paths, m *config.Manifest) []Result {
	var results []Result
	seen := make(map[string]struct{})
	for _, name := range m.Names() {
		if dispatch.Classify(name).Kind != dispatch.KindBinutils || !strings.Contains(name, "objdump") {
			continue
		}
		companion := dispatch.CompanionName(name)
		if _, dup := seen[companion]; dup {
			continue
		}
		seen[companion] = struct{}{}
		if _, err := os.Stat(filepath.Join(paths.BinDir, companion+install.LinkExt())); err != nil {
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameBackends,
				Message:        fmt.Sprintf(messages.DoctorCompanionMissingFmt, name, companion),
				Recommendation: messages.DoctorCompanionMissingRecommend,
			})
		}
	}
	return results
}

// CheckDynconfigs verifies the chip support library under lib/ for every
// xtensa chip in the manifest.
func CheckDynconfigs(paths config.Paths, m *config.Manifest) []Result {
	if m == nil {
		return nil
	}
	var results []Result
	seen := make(map[string]struct{})
	for _, t := range m.Targets {
		if t.Arch != config.ArchXtensa {
			continue
		}
		for _, chip := range t.Chips {
			if _, dup := seen[chip]; dup {
				continue
			}
			seen[chip] = struct{}{}
			path := filepath.Join(paths.LibDir, dispatch.DynconfigName(chip))
			if _, err := os.Stat(path); err != nil {
				results = append(results, Result{
					Status:         StatusFail,
					CheckName:      messages.DoctorCheckNameDynconfigs,
					Message:        fmt.Sprintf(messages.DoctorDynconfigMissingFmt, chip, path),
					Recommendation: messages.DoctorDynconfigMissingRecommend,
				})
			}
		}
	}
	if len(seen) > 0 && len(results) == 0 {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameDynconfigs,
			Message:   fmt.Sprintf(messages.DoctorDynconfigsOKFmt, len(seen)),
		})
	}
	return results
}

// CheckPython probes for a python runtime the way a debugger dispatch does.
// The probed MAJOR.MINOR version is returned for CheckBackends; absence is a
// warning because debuggers degrade to their reduced builds.
func CheckPython() ([]Result, string) {
	path, version, ok := probePythonFunc(nil)
	if !ok {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNamePython,
			Message:        fmt.Sprintf(messages.DoctorPythonMissingFmt, strings.Join(dispatch.PythonCandidates(), ", ")),
			Recommendation: messages.DoctorPythonMissingRecommend,
		}}, ""
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNamePython,
		Message:   fmt.Sprintf(messages.DoctorPythonFoundFmt, version, path),
	}}, version
}

// CheckOverlay parses the optional user overlay. Dispatchers refuse to run
// while the overlay is malformed, so a parse failure is fatal.
func CheckOverlay(paths config.Paths) []Result {
	content, err := os.ReadFile(paths.Overlay)
	if errors.Is(err, fs.ErrNotExist) {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameOverlay,
			Message:   messages.DoctorOverlayAbsent,
		}}
	}
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameOverlay,
			Message:        fmt.Sprintf(messages.DoctorOverlayReadFailedFmt, paths.Overlay, err),
			Recommendation: messages.DoctorOverlayRecommend,
		}}
	}
	vars, err := envfile.Parse(string(content))
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameOverlay,
			Message:        fmt.Sprintf(messages.DoctorOverlayBrokenFmt, paths.Overlay, err),
			Recommendation: messages.DoctorOverlayRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameOverlay,
		Message:   fmt.Sprintf(messages.DoctorOverlayOKFmt, len(vars)),
	}}
}

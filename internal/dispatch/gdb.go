package dispatch

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shimlab/toolshim/internal/messages"
)

const (
	// EnvPythonHome and EnvPythonPath steer the backend's embedded python at
	// the runtime the probe found.
	EnvPythonHome = "PYTHONHOME"
	EnvPythonPath = "PYTHONPATH"

	// NoPythonSuffix names the reduced backend variant built without python
	// scripting. It is assumed to always be installed.
	NoPythonSuffix = "no-python"

	debuggerSmokeFlag  = "--batch-silent"
	debuggerBackendFmt = "%s-%s-elf-gdb-%s"

	// pythonVersionScript prints MAJOR.MINOR for backend name selection.
	pythonVersionScript = "import sys; print('{}.{}'.format(sys.version_info.major, sys.version_info.minor))"
	// pythonHomeScript prints the runtime prefix for PYTHONHOME.
	pythonHomeScript = "import sys; print(sys.base_prefix)"
	// pythonPathScript prints the module search path for PYTHONPATH, without
	// the leading script directory entry.
	pythonPathScript = "import os, sys; print(os.pathsep.join(sys.path[1:]))"
)

// resolveDebugger picks the gdb backend matching the python runtime found on
// the host, falling back to the no-python variant when no runtime answers,
// the matching backend is absent, or the backend fails its smoke test.
func (r *resolution) resolveDebugger() (*Plan, error) {
	segs := strings.Split(r.id.Name, "-")
	arch := segs[0]
	chip := ""
	if len(segs) > 1 {
		chip = segs[1]
	}
	if arch == "xtensa" {
		// Every xtensa chip shares one gdb family; the chip only selects the
		// support library, which gdb loads lazily, so no existence check.
		r.env.set(EnvXtensaConfig, dynconfigPath(r.binDir, chip))
		chip = reservedChip
	}

	interp, version := r.probeInterpreter()
	reduced := version == ""
	suffix := version
	if reduced {
		suffix = NoPythonSuffix
	}
	backend := r.debuggerBackend(arch, chip, suffix)
	if !reduced {
		if _, err := r.sys.Stat(backend); err != nil {
			reduced = true
			backend = r.debuggerBackend(arch, chip, NoPythonSuffix)
		}
	}
	if _, err := r.sys.Stat(backend); err != nil {
		return nil, fmt.Errorf(messages.DispatchBackendMissingFmt, backend)
	}

	if !reduced {
		if err := r.applyInterpreterEnv(interp); err != nil {
			return nil, err
		}
		if !r.smokeTest(backend) {
			fallback := r.debuggerBackend(arch, chip, NoPythonSuffix)
			r.tracer.Printf(messages.DispatchSmokeTestSkipFmt, fallback)
			if _, err := r.sys.Stat(fallback); err != nil {
				return nil, fmt.Errorf(messages.DispatchBackendMissingFmt, fallback)
			}
			backend = fallback
		}
	}

	backend = r.shortIfNeeded(backend)
	argv := append([]string{backend}, r.args[1:]...)
	return r.plan(backend, argv), nil
}

// debuggerBackend builds the backend path for one python suffix.
func (r *resolution) debuggerBackend(arch, chip, suffix string) string {
	return filepath.Join(r.binDir, fmt.Sprintf(debuggerBackendFmt, arch, chip, suffix)+r.id.Ext)
}

// DebuggerBackendName returns the backend base name a debugger invocation of
// name targets for one python suffix, with xtensa chips collapsed to the
// shared family. ok is false when name does not classify as a debugger.
func DebuggerBackendName(name, suffix string) (string, bool) {
	id := Classify(name)
	if id.Kind != KindDebugger {
		return "", false
	}
	segs := strings.Split(id.Name, "-")
	arch := segs[0]
	chip := ""
	if len(segs) > 1 {
		chip = segs[1]
	}
	if arch == "xtensa" {
		chip = reservedChip
	}
	return fmt.Sprintf(debuggerBackendFmt, arch, chip, suffix), true
}

// probeInterpreter finds a usable python and returns its path and
// MAJOR.MINOR version. An empty version means no interpreter answered.
func (r *resolution) probeInterpreter() (string, string) {
	return probePython(r.sys, r.env.env)
}

func probePython(sys System, env []string) (string, string) {
	for _, name := range pythonCandidates {
		path, err := sys.LookPath(name)
		if err != nil {
			continue
		}
		version, err := queryPython(sys, env, path, pythonVersionScript)
		if err != nil || version == "" {
			continue
		}
		return path, version
	}
	return "", ""
}

// ProbePython probes the process environment for a python runtime the way a
// debugger dispatch would, for health reporting. ok is false when none of
// the candidate interpreters answers the version query.
func ProbePython(sys System) (path string, version string, ok bool) {
	if sys == nil {
		sys = RealSystem{}
	}
	path, version = probePython(sys, sys.Environ())
	return path, version, version != ""
}

// PythonCandidates lists the interpreter names probed on this platform.
func PythonCandidates() []string {
	return append([]string(nil), pythonCandidates...)
}

// applyInterpreterEnv points the backend's embedded python at the probed
// runtime. Once a runtime has answered the version probe, a failing query
// here is fatal rather than a silent downgrade.
func (r *resolution) applyInterpreterEnv(interp string) error {
	libDir, err := r.pythonQuery(interp, pythonLibDirScript)
	if err != nil {
		return err
	}
	r.env.prepend(libSearchPathVar(), libDir)

	home, err := r.pythonQuery(interp, pythonHomeScript)
	if err != nil {
		return err
	}
	r.env.set(EnvPythonHome, home)

	path, err := r.pythonQuery(interp, pythonPathScript)
	if err != nil {
		return err
	}
	r.env.prepend(EnvPythonPath, path)
	return nil
}

// pythonQuery runs one -c script and returns its trimmed stdout.
func (r *resolution) pythonQuery(interp, script string) (string, error) {
	return queryPython(r.sys, r.env.env, interp, script)
}

func queryPython(sys System, env []string, interp, script string) (string, error) {
	var out bytes.Buffer
	code, err := sys.Run(interp, []string{"-c", script}, env, &out, io.Discard)
	if err != nil {
		return "", fmt.Errorf(messages.DispatchInterpreterQueryFmt, script, err)
	}
	if code != 0 {
		return "", fmt.Errorf(messages.DispatchInterpreterStatusFmt, script, code)
	}
	return strings.TrimSpace(out.String()), nil
}

// smokeTest runs backend under the prepared environment with outputs
// discarded. Any spawn failure or non-zero exit disqualifies the python
// variant.
func (r *resolution) smokeTest(backend string) bool {
	code, err := r.sys.Run(backend, []string{debuggerSmokeFlag}, r.env.env, io.Discard, io.Discard)
	return err == nil && code == 0
}

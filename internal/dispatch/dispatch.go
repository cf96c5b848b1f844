// Package dispatch resolves the name a multi-call binary was invoked under
// into a concrete backend tool, prepares the backend's argument vector and
// environment, and hands the process over to it.
package dispatch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shimlab/toolshim/internal/messages"
)

// ErrDispatched signals that execution has been handed off to a backend tool.
var ErrDispatched = errors.New(messages.DispatchErrDispatched)

// Plan describes a resolved handoff.
type Plan struct {
	// Backend is the path of the tool that will run.
	Backend string
	// Argv is the full argument vector handed to the backend, argv[0] included.
	Argv []string
	// Env is the complete child environment.
	Env []string
	// Delta lists the changes applied on top of the inherited environment, in
	// application order.
	Delta []EnvOp
}

// MaybeExec resolves args[0] against the surrounding toolchain tree and hands
// execution to the matching backend. It returns ErrDispatched when control
// was handed off and nil when args[0] does not name a tool.
func MaybeExec(args []string, exit func(int)) error {
	return MaybeExecWithSystem(RealSystem{}, args, exit)
}

// MaybeExecWithSystem is MaybeExec with an injectable System.
func MaybeExecWithSystem(sys System, args []string, exit func(int)) error {
	if sys == nil {
		return fmt.Errorf(messages.DispatchSystemRequired)
	}
	if len(args) == 0 || args[0] == "" {
		return fmt.Errorf(messages.DispatchMissingArgv0)
	}
	if exit == nil {
		return fmt.Errorf(messages.DispatchExitHandlerRequired)
	}
	if !IsToolName(filepath.Base(args[0])) {
		return nil
	}

	plan, err := Resolve(sys, args)
	if err != nil {
		return err
	}
	if err := sys.ExecBinary(plan.Backend, plan.Argv, plan.Env, exit); err != nil {
		return fmt.Errorf(messages.DispatchExecFailedFmt, plan.Backend, err)
	}
	return ErrDispatched
}

// Resolve computes the handoff plan for an invocation without performing it.
// The tool name is taken from the normalized invocation path, so short-form
// windows paths resolve to the same tool as their long forms.
func Resolve(sys System, args []string) (*Plan, error) {
	if sys == nil {
		return nil, fmt.Errorf(messages.DispatchSystemRequired)
	}
	if len(args) == 0 || args[0] == "" {
		return nil, fmt.Errorf(messages.DispatchMissingArgv0)
	}

	path, wasShort, err := locateSelf(sys, args[0])
	if err != nil {
		return nil, err
	}
	id := Classify(filepath.Base(path))
	if id.Kind == KindCLI {
		return nil, fmt.Errorf(messages.DispatchUnrecognizedNameFmt, filepath.Base(path))
	}

	binDir := filepath.Dir(path)
	env := newEnvState(sys.Environ(), TracerFromEnv(sys))
	if err := env.applyOverlay(sys, binDir); err != nil {
		return nil, err
	}

	r := &resolution{
		sys:      sys,
		id:       id,
		binDir:   binDir,
		wasShort: wasShort,
		args:     args,
		env:      env,
		tracer:   env.tracer,
	}
	switch id.Kind {
	case KindToolchain:
		return r.resolveToolchain()
	case KindBinutils:
		return r.resolveBinutils()
	default:
		return r.resolveDebugger()
	}
}

// resolution carries the state shared by the per-family resolvers.
type resolution struct {
	sys      System
	id       Identity
	binDir   string
	wasShort bool
	args     []string
	env      *envState
	tracer   *Tracer
}

// plan finalizes a handoff, tracing the chosen backend and argv.
func (r *resolution) plan(backend string, argv []string) *Plan {
	r.tracer.Printf(messages.DispatchTraceBackendFmt, backend)
	r.tracer.Printf(messages.DispatchTraceArgvFmt, argv)
	return &Plan{Backend: backend, Argv: argv, Env: r.env.env, Delta: r.env.delta}
}

// shortIfNeeded converts path back to its short form when the dispatcher was
// itself invoked by a short path. Conversion failures keep the long form.
func (r *resolution) shortIfNeeded(path string) string {
	if !r.wasShort {
		return path
	}
	short, err := r.sys.ShortPathName(path)
	if err != nil {
		return path
	}
	return short
}

// locateSelf resolves the invocation path of the running dispatcher. The
// invocation name is preferred over the executable path so a farm of links
// resolves relative to the link, not the shared binary behind it. The
// returned path is absolute and long-form; wasShort reports whether the
// invocation used the short form.
func locateSelf(sys System, argv0 string) (string, bool, error) {
	path := argv0
	if !strings.ContainsAny(argv0, `/\`) {
		p, err := sys.LookPath(argv0)
		if err != nil {
			p, err = sys.Executable()
			if err != nil {
				return "", false, fmt.Errorf(messages.DispatchLocateSelfFmt, err)
			}
		}
		path = p
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf(messages.DispatchLocateSelfFmt, err)
	}
	long, err := sys.LongPathName(abs)
	if err != nil {
		return "", false, fmt.Errorf(messages.DispatchLocateSelfFmt, err)
	}
	short, err := sys.ShortPathName(abs)
	if err != nil {
		return "", false, fmt.Errorf(messages.DispatchLocateSelfFmt, err)
	}
	return long, short == abs && long != abs, nil
}

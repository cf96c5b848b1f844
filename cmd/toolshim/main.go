package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/shimlab/toolshim/internal/dispatch"
	"github.com/shimlab/toolshim/internal/messages"
)

var maybeExecFunc = dispatch.MaybeExec
var executeFunc = execute

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError reports an exit code without emitting error output.
type SilentExitError struct {
	Code int
}

func (e SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// execute runs the management CLI with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.Version = versionString()
	cmd.SetVersionTemplate(messages.VersionTemplate)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	}
	return cmd.Execute()
}

// runMain hands tool invocations over to the dispatcher and everything else
// to the management CLI, exiting on fatal errors. A dispatch error is always
// fatal: a tool name that reached us exists as a link, so falling through to
// the CLI would turn a broken tree into a confusing usage message.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	if err := maybeExecFunc(args, exit); err != nil {
		if errors.Is(err, dispatch.ErrDispatched) {
			return
		}
		_, _ = fmt.Fprintln(stderr, err)
		exit(1)
		return
	}
	err := executeFunc(args, stdout, stderr)
	if err == nil {
		return
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		exit(silent.Code)
		return
	}
	_, _ = fmt.Fprintln(stderr, err)
	exit(cliExitCode(err))
}

// cliExitCode maps a CLI error to a process exit code, carrying a backend's
// status through when the error wraps one.
func cliExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

// versionString formats Version plus whatever build metadata was stamped in.
func versionString() string {
	var meta []string
	if Commit != "" && Commit != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionCommitFmt, Commit))
	}
	if BuildDate != "" && BuildDate != "unknown" {
		meta = append(meta, fmt.Sprintf(messages.VersionBuildFmt, BuildDate))
	}
	if len(meta) == 0 {
		return Version
	}
	return fmt.Sprintf(messages.VersionFullFmt, Version, strings.Join(meta, ", "))
}

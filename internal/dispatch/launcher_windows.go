//go:build windows

package dispatch

import (
	"errors"
	"os"
	"os/exec"

	"golang.org/x/sys/windows"
)

// execBinary runs the target binary as a child with inherited stdio and
// forwards its exit code through exit. Windows has no process replacement,
// so console ctrl events are left to the child by dropping this process's
// handler. A child killed without an exit code reports -1.
func execBinary(path string, args []string, env []string, exit func(int)) error {
	cmd := exec.Command(path)
	cmd.Args = args
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	_ = windows.SetConsoleCtrlHandler(0, true)
	if err := cmd.Start(); err != nil {
		return err
	}

	code := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}
	exit(code)
	return nil
}

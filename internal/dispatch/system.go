package dispatch

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

// System abstracts OS operations needed by tool dispatch.
// This interface is intentionally package-local to enable parallel-safe unit
// tests without shared global state. Other packages (install, doctor) define
// their own System interfaces with operations specific to their needs.
type System interface {
	Executable() (string, error)
	LookPath(name string) (string, error)
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadFileHeader(name string, n int) ([]byte, error)
	Getenv(key string) string
	Environ() []string
	Run(path string, args []string, env []string, stdout, stderr io.Writer) (int, error)
	ExecBinary(path string, args []string, env []string, exit func(int)) error
	LongPathName(path string) (string, error)
	ShortPathName(path string) (string, error)
	Stdout() io.Writer
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Executable returns the path of the running binary.
func (RealSystem) Executable() (string, error) {
	return os.Executable()
}

// LookPath searches PATH for an executable named name.
func (RealSystem) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Stat returns file info for the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// ReadFileHeader reads up to n leading bytes of the named file. A file shorter
// than n yields a short slice, not an error.
func (RealSystem) ReadFileHeader(name string, n int) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	buf := make([]byte, n)
	m, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:m], nil
}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// Run starts path with args and env, waits for it, and returns its exit code.
// A non-nil error means the process could not be started or waited on; a
// non-zero exit from the child is reported through the code alone.
func (RealSystem) Run(path string, args []string, env []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Env = env
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}

// ExecBinary hands the process over to the provided binary.
func (RealSystem) ExecBinary(path string, args []string, env []string, exit func(int)) error {
	return execBinary(path, args, env, exit)
}

// LongPathName expands path to its long form where the OS distinguishes one.
func (RealSystem) LongPathName(path string) (string, error) {
	return longPathName(path)
}

// ShortPathName contracts path to its short form where the OS distinguishes one.
func (RealSystem) ShortPathName(path string) (string, error) {
	return shortPathName(path)
}

// Stdout returns the standard output writer.
func (RealSystem) Stdout() io.Writer {
	return os.Stdout
}

package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
//
// Fallback behavior:
//   - Executable, LookPath, Run, ExecBinary: return errNotMocked (fail-fast).
//     These either have side effects or would let the build host's tools leak
//     into dispatch decisions.
//   - Stat, ReadFile, ReadFileHeader, Getenv, Environ: fall back to
//     RealSystem. This enables tests to use t.TempDir() for filesystem
//     fixtures and t.Setenv() for environment variables without requiring
//     explicit mocks for every call.
//   - LongPathName, ShortPathName: fall back to RealSystem, which is the
//     identity on unix hosts.
//
// When adding new methods, prefer fail-fast unless the method is commonly
// used with real test fixtures (t.TempDir, t.Setenv).
type testSystem struct {
	RealSystem

	ExecutableFunc     func() (string, error)
	LookPathFunc       func(name string) (string, error)
	StatFunc           func(name string) (os.FileInfo, error)
	ReadFileFunc       func(name string) ([]byte, error)
	ReadFileHeaderFunc func(name string, n int) ([]byte, error)
	GetenvFunc         func(key string) string
	EnvironFunc        func() []string
	RunFunc            func(path string, args []string, env []string, stdout, stderr io.Writer) (int, error)
	ExecBinaryFunc     func(path string, args []string, env []string, exit func(int)) error
	LongPathNameFunc   func(path string) (string, error)
	ShortPathNameFunc  func(path string) (string, error)
	StdoutFunc         func() io.Writer
}

func (s *testSystem) Executable() (string, error) {
	if s.ExecutableFunc != nil {
		return s.ExecutableFunc()
	}
	return "", fmt.Errorf("%w: Executable", errNotMocked)
}

func (s *testSystem) LookPath(name string) (string, error) {
	if s.LookPathFunc != nil {
		return s.LookPathFunc(name)
	}
	return "", fmt.Errorf("%w: LookPath", errNotMocked)
}

func (s *testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return s.RealSystem.Stat(name)
}

func (s *testSystem) ReadFile(name string) ([]byte, error) {
	if s.ReadFileFunc != nil {
		return s.ReadFileFunc(name)
	}
	return s.RealSystem.ReadFile(name)
}

func (s *testSystem) ReadFileHeader(name string, n int) ([]byte, error) {
	if s.ReadFileHeaderFunc != nil {
		return s.ReadFileHeaderFunc(name, n)
	}
	return s.RealSystem.ReadFileHeader(name, n)
}

func (s *testSystem) Getenv(key string) string {
	if s.GetenvFunc != nil {
		return s.GetenvFunc(key)
	}
	return s.RealSystem.Getenv(key)
}

func (s *testSystem) Environ() []string {
	if s.EnvironFunc != nil {
		return s.EnvironFunc()
	}
	return s.RealSystem.Environ()
}

func (s *testSystem) Run(path string, args []string, env []string, stdout, stderr io.Writer) (int, error) {
	if s.RunFunc != nil {
		return s.RunFunc(path, args, env, stdout, stderr)
	}
	return 0, fmt.Errorf("%w: Run", errNotMocked)
}

func (s *testSystem) ExecBinary(path string, args []string, env []string, exit func(int)) error {
	if s.ExecBinaryFunc != nil {
		return s.ExecBinaryFunc(path, args, env, exit)
	}
	return fmt.Errorf("%w: ExecBinary", errNotMocked)
}

func (s *testSystem) LongPathName(path string) (string, error) {
	if s.LongPathNameFunc != nil {
		return s.LongPathNameFunc(path)
	}
	return s.RealSystem.LongPathName(path)
}

func (s *testSystem) ShortPathName(path string) (string, error) {
	if s.ShortPathNameFunc != nil {
		return s.ShortPathNameFunc(path)
	}
	return s.RealSystem.ShortPathName(path)
}

func (s *testSystem) Stdout() io.Writer {
	if s.StdoutFunc != nil {
		return s.StdoutFunc()
	}
	return io.Discard
}

package install

import (
	"os"
)

// testSystem wraps RealSystem with optional overrides. Install tests operate
// on real temp trees, so unset fields fall through to the real filesystem;
// overrides exist to inject faults on specific operations.
type testSystem struct {
	RealSystem
	LstatFunc           func(name string) (os.FileInfo, error)
	StatFunc            func(name string) (os.FileInfo, error)
	ReadFileFunc        func(name string) ([]byte, error)
	ReadlinkFunc        func(name string) (string, error)
	ReadDirFunc         func(name string) ([]os.DirEntry, error)
	MkdirAllFunc        func(path string, perm os.FileMode) error
	RemoveFunc          func(name string) error
	SymlinkFunc         func(oldname string, newname string) error
	WriteFileAtomicFunc func(filename string, data []byte, perm os.FileMode) error
}

func (s *testSystem) Lstat(name string) (os.FileInfo, error) {
	if s.LstatFunc != nil {
		return s.LstatFunc(name)
	}
	return s.RealSystem.Lstat(name)
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

func (s *testSystem) Readlink(name string) (string, error) {
	if s.ReadlinkFunc != nil {
		return s.ReadlinkFunc(name)
	}
	return s.RealSystem.Readlink(name)
}

func (s *testSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if s.ReadDirFunc != nil {
		return s.ReadDirFunc(name)
	}
	return s.RealSystem.ReadDir(name)
}

func (s *testSystem) MkdirAll(path string, perm os.FileMode) error {
	if s.MkdirAllFunc != nil {
		return s.MkdirAllFunc(path, perm)
	}
	return s.RealSystem.MkdirAll(path, perm)
}

func (s *testSystem) Remove(name string) error {
	if s.RemoveFunc != nil {
		return s.RemoveFunc(name)
	}
	return s.RealSystem.Remove(name)
}

func (s *testSystem) Symlink(oldname string, newname string) error {
	if s.SymlinkFunc != nil {
		return s.SymlinkFunc(oldname, newname)
	}
	return s.RealSystem.Symlink(oldname, newname)
}

func (s *testSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if s.WriteFileAtomicFunc != nil {
		return s.WriteFileAtomicFunc(filename, data, perm)
	}
	return s.RealSystem.WriteFileAtomic(filename, data, perm)
}

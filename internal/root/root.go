// Package root locates the toolchain tree that owns a directory.
package root

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/messages"
)

// FindToolchainRoot walks up from start to the nearest directory containing
// a toolshim.toml manifest. It returns the directory and true when found,
// and false without error when the walk reaches the filesystem root first.
func FindToolchainRoot(start string) (string, bool, error) {
	if start == "" {
		return "", false, errors.New(messages.RootStartRequired)
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, err
	}
	for {
		marker := filepath.Join(dir, config.ManifestFileName)
		info, err := os.Stat(marker)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf(messages.RootMarkerIsDirFmt, marker)
			}
			return dir, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/messages"
	"github.com/shimlab/toolshim/internal/root"
)

// explicitRoot returns the tree root named by the --root flag or
// TOOLSHIM_ROOT, with ~ expanded. found is false when neither is set.
func explicitRoot() (string, bool, error) {
	if flag := strings.TrimSpace(rootFlag); flag != "" {
		expanded, err := homedir.Expand(flag)
		if err != nil {
			return "", false, fmt.Errorf(messages.RootExpandRootFmt, flag, err)
		}
		return expanded, true, nil
	}
	if env := strings.TrimSpace(os.Getenv(config.EnvRoot)); env != "" {
		return env, true, nil
	}
	return "", false, nil
}

// resolveTreeRoot locates the toolchain tree for tree-bound commands: the
// --root flag wins, then TOOLSHIM_ROOT, then the nearest parent of the
// working directory containing the manifest.
func resolveTreeRoot() (string, error) {
	dir, found, err := explicitRoot()
	if err != nil {
		return "", err
	}
	if found {
		return dir, nil
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	dir, found, err = root.FindToolchainRoot(cwd)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf(messages.RootMissingRootFmt, config.ManifestFileName, config.EnvRoot)
	}
	return dir, nil
}

// resolveInitRoot is resolveTreeRoot for init, which may target a tree that
// has no manifest yet: when the walk up finds nothing, the working directory
// itself is the root.
func resolveInitRoot() (string, error) {
	dir, found, err := explicitRoot()
	if err != nil {
		return "", err
	}
	if found {
		return dir, nil
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	dir, found, err = root.FindToolchainRoot(cwd)
	if err != nil {
		return "", err
	}
	if !found {
		return cwd, nil
	}
	return dir, nil
}

package config

import "path/filepath"

// ManifestFileName is the manifest's well-known name in the tree root.
const ManifestFileName = "toolshim.toml"

// OverlayFileName is the optional environment overlay next to the manifest.
const OverlayFileName = "toolshim.env"

// EnvRoot names the variable that points management commands at a toolchain
// tree when no --root flag is given.
const EnvRoot = "TOOLSHIM_ROOT"

// Paths holds resolved locations inside a toolchain tree.
type Paths struct {
	Root     string
	BinDir   string
	LibDir   string
	Manifest string
	Overlay  string
	LockFile string
}

// DefaultPaths returns the standard tree layout under root.
func DefaultPaths(root string) Paths {
	return Paths{
		Root:     root,
		BinDir:   filepath.Join(root, "bin"),
		LibDir:   filepath.Join(root, "lib"),
		Manifest: filepath.Join(root, ManifestFileName),
		Overlay:  filepath.Join(root, OverlayFileName),
		LockFile: filepath.Join(root, "bin", ".toolshim.lock"),
	}
}

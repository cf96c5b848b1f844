// Package templates provides the embedded starter files written by init
// when a toolchain tree has nothing to scan.
package templates

import (
	"embed"
)

//go:embed all:templates
var files embed.FS

// Read returns the template content at path, relative to the template root.
func Read(path string) ([]byte, error) {
	return files.ReadFile("templates/" + path)
}

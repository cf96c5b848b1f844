package install

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// RenderManifestDiff returns a unified diff between the manifest on disk and
// the content init proposes to write.
func RenderManifestDiff(current string, proposed string) string {
	diff := udiff.Unified("toolshim.toml (current)", "toolshim.toml (proposed)", current, proposed)
	return ensureTrailingNewline(diff)
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

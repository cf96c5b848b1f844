package install

import (
	"errors"

	"github.com/shimlab/toolshim/internal/messages"
)

// Prompter confirms replacement of entries that are not toolshim links.
type Prompter interface {
	OverwriteAll(paths []string) (bool, error)
}

// PromptOverwriteAllFunc asks whether to replace all given paths.
type PromptOverwriteAllFunc func(paths []string) (bool, error)

// PromptFuncs adapts an optional prompt callback into a Prompter.
type PromptFuncs struct {
	OverwriteAllFunc PromptOverwriteAllFunc
}

// OverwriteAll prompts the user to confirm replacing all given paths.
// Returns an error if no OverwriteAllFunc is configured.
func (p PromptFuncs) OverwriteAll(paths []string) (bool, error) {
	if p.OverwriteAllFunc == nil {
		return false, errors.New(messages.InstallPromptRequiresTerminal)
	}
	return p.OverwriteAllFunc(paths)
}

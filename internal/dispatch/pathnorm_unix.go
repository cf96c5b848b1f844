//go:build !windows

package dispatch

// longPathName returns path unchanged; only windows distinguishes path forms.
func longPathName(path string) (string, error) {
	return path, nil
}

// shortPathName returns path unchanged; only windows distinguishes path forms.
func shortPathName(path string) (string, error) {
	return path, nil
}

//go:build !windows

package dispatch

import "runtime"

// pythonCandidates lists interpreter names probed in order.
var pythonCandidates = []string{"python3"}

// pythonLibDirScript prints the directory holding the runtime's shared
// libraries, prepended to the loader search path.
const pythonLibDirScript = "import sys, os, sysconfig; print(os.path.join(sys.base_prefix, 'lib'))"

// libSearchPathVar returns the dynamic loader's search path variable.
func libSearchPathVar() string {
	if runtime.GOOS == "darwin" {
		return "DYLD_LIBRARY_PATH"
	}
	return "LD_LIBRARY_PATH"
}

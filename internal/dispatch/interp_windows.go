//go:build windows

package dispatch

// pythonCandidates lists interpreter names probed in order. Plain python is
// the common install name on windows.
var pythonCandidates = []string{"python", "python3"}

// pythonLibDirScript prints the runtime prefix; windows resolves python DLLs
// through PATH rather than a dedicated loader variable.
const pythonLibDirScript = "import sys; print(sys.base_prefix)"

// libSearchPathVar returns the DLL search path variable.
func libSearchPathVar() string {
	return "PATH"
}

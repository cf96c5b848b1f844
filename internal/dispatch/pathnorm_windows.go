//go:build windows

package dispatch

import "golang.org/x/sys/windows"

// longPathName expands any 8.3 components of path.
func longPathName(path string) (string, error) {
	return convertPathName(path, windows.GetLongPathName)
}

// shortPathName contracts path to its 8.3 form where the volume keeps one.
func shortPathName(path string) (string, error) {
	return convertPathName(path, windows.GetShortPathName)
}

// convertPathName calls one of the path form APIs, growing the buffer until
// the result fits. The APIs report the required size when the buffer is too
// small.
func convertPathName(path string, convert func(*uint16, *uint16, uint32) (uint32, error)) (string, error) {
	wide, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return "", err
	}
	buf := make([]uint16, 260)
	for {
		n, err := convert(wide, &buf[0], uint32(len(buf)))
		if err != nil {
			return "", err
		}
		if int(n) <= len(buf) {
			return windows.UTF16ToString(buf[:n]), nil
		}
		buf = make([]uint16, n)
	}
}

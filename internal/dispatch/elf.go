package dispatch

import "bytes"

// Magic numbers for the linkable objects the objdump dispatcher inspects.
var (
	elfMagic     = []byte{0x7f, 'E', 'L', 'F'}
	archiveMagic = []byte("!<arch>\n")
)

const magicProbeLen = 8

// isObjectFile reports whether name is a regular file starting with an ELF
// or ar archive signature. Unreadable paths count as non-objects.
func isObjectFile(sys System, name string) bool {
	info, err := sys.Stat(name)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	header, err := sys.ReadFileHeader(name, magicProbeLen)
	if err != nil {
		return false
	}
	return bytes.HasPrefix(header, elfMagic) || bytes.Equal(header, archiveMagic)
}

package dispatch

import "strings"

// insertArg returns argv with arg inserted directly after the program name.
func insertArg(argv []string, arg string) []string {
	out := make([]string, 0, len(argv)+1)
	out = append(out, argv[0], arg)
	return append(out, argv[1:]...)
}

// stripArgsWithPrefix returns args without any argument carrying prefix.
func stripArgsWithPrefix(args []string, prefix string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, prefix) {
			continue
		}
		out = append(out, a)
	}
	return out
}

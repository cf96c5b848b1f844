package main

import "slices"

// stripArgsSeparator drops the first standalone "--" so everything around it
// reaches the backend tool unchanged. Later separators are kept; they belong
// to the tool's own argument grammar.
func stripArgsSeparator(args []string) []string {
	i := slices.Index(args, "--")
	if i < 0 {
		return args
	}
	out := make([]string, 0, len(args)-1)
	out = append(out, args[:i]...)
	return append(out, args[i+1:]...)
}

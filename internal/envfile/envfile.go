// Package envfile parses the KEY=VALUE overlay files a toolchain tree may
// ship alongside its manifest. The grammar accepts blank lines, # comments,
// an optional export prefix, and single- or double-quoted values.
package envfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/shimlab/toolshim/internal/messages"
)

// Parse reads overlay content into a key-value map.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	if content == "" {
		return env, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		env[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}

	return env, nil
}

// parseLine parses a single overlay line and returns key/value when present.
func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	if strings.HasPrefix(trimmed, "export ") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	}
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	key := strings.TrimSpace(trimmed[:idx])
	if key == "" {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	value := strings.TrimSpace(trimmed[idx+1:])
	switch {
	case strings.HasPrefix(value, `"`):
		return parseQuoted(key, value, '"')
	case strings.HasPrefix(value, `'`):
		return parseQuoted(key, value, '\'')
	}
	return key, value, true, nil
}

// parseQuoted handles a quoted value. Double quotes honor backslash escapes;
// single quotes take the payload literally.
func parseQuoted(key, value string, quote byte) (string, string, bool, error) {
	closing := -1
	if quote == '"' {
		closing = findClosingDoubleQuote(value)
	} else if len(value) >= 2 {
		if off := strings.IndexByte(value[1:], quote); off >= 0 {
			closing = 1 + off
		}
	}
	if closing < 0 {
		return "", "", false, fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
	}
	if err := validateQuotedSuffix(value[closing+1:]); err != nil {
		return "", "", false, err
	}
	payload := value[1:closing]
	if quote == '"' {
		payload = unescapeDoubleQuoted(payload)
	}
	return key, payload, true, nil
}

// findClosingDoubleQuote returns the index of the first unescaped closing
// quote in value, which is expected to start with one.
func findClosingDoubleQuote(value string) int {
	for i := 1; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// validateQuotedSuffix permits only whitespace and a trailing # comment after
// a quoted value.
func validateQuotedSuffix(suffix string) error {
	trimmed := strings.TrimSpace(suffix)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	return fmt.Errorf(messages.EnvfileInvalidQuotedSuffix)
}

// unescapeDoubleQuoted decodes \\, \", \n and \r inside a double-quoted
// payload. Unrecognized escapes pass through untouched.
func unescapeDoubleQuoted(escaped string) string {
	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		if c != '\\' || i+1 == len(escaped) {
			b.WriteByte(c)
			continue
		}
		switch escaped[i+1] {
		case '\\', '"':
			b.WriteByte(escaped[i+1])
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

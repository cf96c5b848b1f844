package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/shimlab/toolshim/internal/messages"
)

// ErrManifestValidation is a sentinel that wraps manifest validation
// failures (as opposed to TOML syntax or filesystem errors). Callers can use
// errors.Is(err, ErrManifestValidation) to distinguish validation problems
// from other loading failure modes.
var ErrManifestValidation = errors.New(messages.ConfigErrValidation)

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	return ParseManifest(data)
}

// ParseManifest parses and validates manifest TOML data.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf(messages.ConfigParseFailedFmt, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigStrictDecodeFmt, ErrManifestValidation, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestValidation, err)
	}
	return &m, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
// This catches keys that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var m Manifest
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&m)
}

// ParseManifestLenient parses manifest TOML data without validation.
// Returns an error only on TOML syntax errors, making it suitable for
// diagnostic tools that need to read partially valid manifests.
func ParseManifestLenient(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf(messages.ConfigParseFailedFmt, err)
	}
	return &m, nil
}

// LoadManifestLenient reads the manifest at path without validation.
func LoadManifestLenient(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	return ParseManifestLenient(data)
}

// EncodeManifest renders a manifest as TOML.
func EncodeManifest(m *Manifest) ([]byte, error) {
	return toml.Marshal(m)
}

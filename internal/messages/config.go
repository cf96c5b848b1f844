package messages

// Config messages cover manifest loading and validation.
const (
	ConfigErrValidation = "manifest validation"

	ConfigReadFailedFmt   = "read manifest %s: %w"
	ConfigParseFailedFmt  = "parse manifest: %w"
	ConfigStrictDecodeFmt = "manifest has unknown fields: %w"
	ConfigWriteFailedFmt  = "write manifest %s: %w"

	ConfigNoTargets             = "manifest declares no targets"
	ConfigTargetArchFmt         = "target %d: arch must be one of %s, got %q"
	ConfigTargetNoChipsFmt      = "target %d (%s): at least one chip is required"
	ConfigTargetNoToolsFmt      = "target %d (%s): at least one tool is required"
	ConfigTargetEmptyChipFmt    = "target %d (%s): chip names must be non-empty"
	ConfigTargetEmptyToolFmt    = "target %d (%s): tool names must be non-empty"
	ConfigTargetSeparatorFmt    = "target %d (%s): %q must not contain path separators"
	ConfigTargetReservedChipFmt = `target %d (%s): chip "esp" is reserved`
	ConfigDuplicateNameFmt      = "duplicate tool name %s"

	// EnvfileLineErrorFmt prefixes parse errors with their line number.
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "read overlay content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "unexpected characters after quoted value"
)

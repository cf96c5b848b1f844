package messages

// Dispatch messages cover tool-name resolution and process handoff.
const (
	// DispatchErrDispatched is the sentinel text for a completed handoff.
	DispatchErrDispatched = "dispatched"

	DispatchMissingArgv0        = "dispatch: empty argv"
	DispatchSystemRequired      = "dispatch: system is required"
	DispatchExitHandlerRequired = "dispatch: exit handler is required"

	// DispatchUnrecognizedNameFmt reports an invocation name that maps to no tool family.
	DispatchUnrecognizedNameFmt = "unrecognized tool name %q"
	DispatchLocateSelfFmt       = "locate invoked binary: %w"

	DispatchXtensaNamePatternFmt = "tool name %q must match xtensa-<chip>-elf-<tool>"
	DispatchXtensaReservedChip   = `target chip must not be "esp"`
	DispatchBackendMissingFmt    = "backend tool %s does not exist"
	DispatchDynconfigMissingFmt  = "dynconfig for target %s does not exist (%s)"

	DispatchCompanionRunFmt = "run %s: %w"

	DispatchInterpreterQueryFmt  = "query python runtime (%s): %w"
	DispatchInterpreterStatusFmt = "query python runtime (%s): exit status %d"
	DispatchSmokeTestSkipFmt     = "debugger smoke test failed; falling back to %s"

	DispatchExecFailedFmt = "exec %s: %w"

	DispatchReadOverlayFmt    = "read environment overlay %s: %w"
	DispatchInvalidOverlayFmt = "parse environment overlay %s: %w"

	// DispatchTraceExportFmt traces one environment assignment.
	DispatchTraceExportFmt  = "export %s=%s"
	DispatchTraceBackendFmt = "backend %s"
	DispatchTraceArgvFmt    = "argv %v"
	DispatchTraceSuffixFmt  = "suffix %s from %s"
	DispatchTraceObjectFmt  = "file %s has %s"
)

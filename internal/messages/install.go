package messages

// Install messages for link farm management and manifest generation.
const (
	// InstallRootRequired indicates a toolchain root is required.
	InstallRootRequired = "toolchain root is required"
	// InstallSystemRequired indicates a system is required.
	InstallSystemRequired = "install system is required"
	// InstallBinaryRequired indicates the link target binary is required.
	InstallBinaryRequired = "dispatcher binary path is required"

	InstallCreateDirFailedFmt = "create directory %s: %w"
	InstallReadEntryFailedFmt = "inspect %s: %w"
	InstallLinkFailedFmt      = "link %s: %w"
	InstallRemoveFailedFmt    = "remove %s: %w"

	InstallPlanLinkFmt    = "  link    %s -> %s\n"
	InstallPlanReplaceFmt = "  replace %s -> %s\n"
	InstallPlanKeepFmt    = "  keep    %s\n"
	InstallPlanRemoveFmt  = "  remove  %s\n"
	InstallPlanSkipFmt    = "  skip    %s (not a toolshim link)\n"
	InstallDryRunNotice   = "Dry run; nothing was changed."
	InstallDoneFmt        = "Installed %d dispatcher links in %s\n"
	UninstallDoneFmt      = "Removed %d dispatcher links from %s\n"
	UninstallNothing      = "No toolshim links to remove."

	InstallOpenLockFmt    = "open lock %s: %w"
	InstallLockFmt        = "lock %s: %w"
	InstallLockTimeoutFmt = "timed out waiting for lock after %s"

	// ScanReadDirFailedFmt formats tree scan failures.
	ScanReadDirFailedFmt = "scan %s: %w"

	FsutilCreateTempFileFmt = "create temp file for %s: %w"
	FsutilSetPermissionsFmt = "set permissions for %s: %w"
	FsutilWriteTempFileFmt  = "write temp file for %s: %w"
	FsutilSyncTempFileFmt   = "sync temp file for %s: %w"
	FsutilCloseTempFileFmt  = "close temp file for %s: %w"
	FsutilRenameTempFileFmt = "rename temp file for %s: %w"
)

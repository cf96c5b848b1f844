package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "toolshim"
	// RootShort is the short description for the root command.
	RootShort          = "Cross-toolchain dispatcher manager"
	RootLong           = "toolshim installs itself under cross-tool names and, when invoked under one, resolves the matching backend tool and hands execution off to it.\nInvoked as toolshim it manages the dispatcher farm of a toolchain tree."
	RootVersionFlag    = "Print version and exit"
	RootFlagRoot       = "Toolchain root directory (defaults to TOOLSHIM_ROOT or the nearest parent containing toolshim.toml)"
	RootMissingRootFmt = "no toolchain root found (missing %s); pass --root or set %s"
	RootExpandRootFmt  = "expand root %s: %w"
	RootStartRequired  = "start path is required"
	RootMarkerIsDirFmt = "%s is a directory, expected a manifest file"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InstallUse is the install command name.
	InstallUse   = "install"
	InstallShort = "Install dispatcher links for every tool named in the manifest"

	InstallFlagForce  = "Replace existing entries without prompting"
	InstallFlagDryRun = "Print the planned changes without touching the tree"

	InstallPromptRequiresTerminal = "replacing existing entries requires an interactive terminal; re-run with --force"
	InstallOverwriteHeader        = "Existing entries that are not toolshim links:"
	InstallOverwriteEntryFmt      = "  %s\n"
	InstallOverwriteAllPrompt     = "Replace all of them with dispatcher links?"

	// CLILocateBinaryFmt formats failures to find the running executable.
	CLILocateBinaryFmt = "locate dispatcher binary: %w"

	// UninstallUse is the uninstall command name.
	UninstallUse   = "uninstall"
	UninstallShort = "Remove dispatcher links named in the manifest"

	UninstallFlagDryRun = "Print the planned removals without touching the tree"

	// InitUse is the init command name.
	InitUse   = "init"
	InitShort = "Generate toolshim.toml by scanning the toolchain tree"

	InitFlagForce = "Overwrite an existing manifest without prompting"

	InitManifestUpToDate       = "Manifest is up to date."
	InitManifestWrittenFmt     = "Wrote %s\n"
	InitStarterManifestNotice  = "No backends found; writing the starter manifest."
	InitDiffHeader             = "Manifest changes:"
	InitOverwritePrompt        = "Overwrite the existing manifest?"
	InitOverwriteAborted       = "Keeping the existing manifest."
	InitPromptRequiresTerminal = "overwriting the manifest requires an interactive terminal; re-run with --force"

	// ResolveUse is the resolve command usage.
	ResolveUse   = "resolve <tool-name> [-- args...]"
	ResolveShort = "Resolve a dispatcher name against the tree and print the handoff plan"

	ResolveBackendFmt    = "backend: %s\n"
	ResolveArgvHeader    = "argv:"
	ResolveArgvLineFmt   = "  %s\n"
	ResolveEnvHeader     = "environment delta:"
	ResolveEnvSetFmt     = "  set %s=%s\n"
	ResolveEnvPrependFmt = "  prepend %s=%s\n"

	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the toolchain tree health"

	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt = "%s [Y/n]: "
	// PromptNoDefaultFmt formats yes/no prompts with no as default.
	PromptNoDefaultFmt    = "%s [y/N]: "
	PromptRetryYesNo      = "Please answer y or n."
	PromptInvalidResponse = "invalid response %q"
)

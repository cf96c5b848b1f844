package messages

// Doctor messages for the doctor command.
const (
	DoctorHealthCheckFmt = "🔧 Checking toolchain tree health in %s...\n"

	DoctorCheckNameRoot       = "Root"
	DoctorCheckNameManifest   = "Manifest"
	DoctorCheckNameBackends   = "Backends"
	DoctorCheckNameDynconfigs = "Dynconfigs"
	DoctorCheckNameLinks      = "Links"
	DoctorCheckNamePython     = "Python"
	DoctorCheckNameOverlay    = "Overlay"

	DoctorMissingBinDirFmt       = "Missing bin directory: %s"
	DoctorMissingBinDirRecommend = "Point --root at a toolchain tree with a bin/ directory."
	DoctorMissingLibDirFmt       = "Missing lib directory: %s"
	DoctorMissingLibDirRecommend = "Xtensa chips need their support libraries under lib/; riscv32-only trees can ignore this."
	DoctorPathNotDirFmt          = "%s exists but is not a directory"
	DoctorBinDirOKFmt            = "Bin directory exists: %s"
	DoctorLibDirOKFmt            = "Lib directory exists: %s"

	DoctorManifestLoadFailedFmt    = "Failed to load manifest: %v"
	DoctorManifestLoadRecommend    = "Run `toolshim init` to generate toolshim.toml, or fix the reported fields."
	DoctorManifestLenientRecommend = "Fix the reported fields; the checks below use the manifest as written."
	DoctorManifestLoadedFmt        = "Manifest loaded (%d tool names)"
	DoctorManifestMissingFmt       = "No manifest at %s"
	DoctorManifestMissingRecommend = "Run `toolshim init` to generate one from the tree."

	DoctorBackendMissingFmt         = "Missing backend for %s: %s"
	DoctorBackendMissingRecommend   = "Install the backend tool or remove its name from the manifest."
	DoctorBackendsOKFmt             = "All %d backends resolve"
	DoctorBackendReducedFmt         = "%s resolves only to the reduced variant %s"
	DoctorCompanionMissingFmt       = "%s scans objects through %s, which is missing"
	DoctorCompanionMissingRecommend = "Add readelf to the riscv32 tools and re-run `toolshim install`."

	DoctorDynconfigMissingFmt       = "Missing dynconfig for chip %s: %s"
	DoctorDynconfigMissingRecommend = "Install the chip support library under lib/ or drop the chip from the manifest."
	DoctorDynconfigsOKFmt           = "All %d dynconfigs present"

	DoctorLinkMissingFmt       = "Not installed: %s"
	DoctorLinkMissingRecommend = "Run `toolshim install`."
	DoctorLinkForeignFmt       = "Exists but is not a toolshim link: %s"
	DoctorLinkForeignRecommend = "Move the entry aside or re-run `toolshim install --force`."
	DoctorLinkStaleFmt         = "%s points at a different toolshim binary: %s"
	DoctorLinkStaleRecommend   = "Re-run `toolshim install` to repoint it."
	DoctorLinksOKFmt           = "All %d dispatcher links installed"

	DoctorPythonMissingFmt       = "No python interpreter found (tried %s)"
	DoctorPythonMissingRecommend = "Install python3 or debuggers will resolve to their no-python variants."
	DoctorPythonFoundFmt         = "Python %s found: %s"

	DoctorOverlayAbsent        = "No overlay file (optional)"
	DoctorOverlayReadFailedFmt = "Cannot read overlay %s: %v"
	DoctorOverlayBrokenFmt     = "Overlay %s does not parse: %v"
	DoctorOverlayRecommend     = "Fix or remove the overlay file; dispatchers refuse to run while it is malformed."
	DoctorOverlayOKFmt         = "Overlay parses (%d variables)"

	DoctorFailureSummary = "❌ Some checks failed or triggered warnings. Please address the items above."
	DoctorSuccessSummary = "✅ All checks passed. The toolchain tree is ready."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       💡 "
	DoctorRecommendationIndent = "         "
)

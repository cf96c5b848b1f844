package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/doctor"
	"github.com/shimlab/toolshim/internal/messages"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			rootDir, err := resolveTreeRoot()
			if err != nil {
				return err
			}
			paths := config.DefaultPaths(rootDir)

			_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, paths.Root)

			var allResults []doctor.Result

			allResults = append(allResults, doctor.CheckRoot(paths)...)

			manifestResults, manifest := doctor.CheckManifest(paths)
			allResults = append(allResults, manifestResults...)

			// Locating the running binary is allowed to fail here: without it
			// the link check skips stale detection but still finds foreign
			// entries and missing links.
			binary, _ := executablePath()
			allResults = append(allResults, doctor.CheckLinks(paths, manifest, binary)...)

			// The python probe runs before the backend check so debugger
			// variants can be judged against the interpreter actually found.
			pythonResults, pythonVersion := doctor.CheckPython()
			allResults = append(allResults, doctor.CheckBackends(paths, manifest, pythonVersion)...)
			allResults = append(allResults, doctor.CheckDynconfigs(paths, manifest)...)
			allResults = append(allResults, pythonResults...)
			allResults = append(allResults, doctor.CheckOverlay(paths)...)

			hasFail := false
			for _, r := range allResults {
				printResult(out, r)
				if r.Status == doctor.StatusFail {
					hasFail = true
				}
			}

			if hasFail {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return &SilentExitError{Code: 1}
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
}

func printResult(out io.Writer, r doctor.Result) {
	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, statusLabel(r.Status), r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

func statusLabel(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		return color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		return color.RedString(messages.DoctorStatusFailLabel)
	}
	return ""
}

// printRecommendation renders a multi-line recommendation with the first line
// marked and continuation lines aligned under it.
func printRecommendation(out io.Writer, recommendation string) {
	for i, line := range strings.Split(recommendation, "\n") {
		prefix := messages.DoctorRecommendationIndent
		if i == 0 {
			prefix = messages.DoctorRecommendationPrefix
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", prefix, line)
	}
}

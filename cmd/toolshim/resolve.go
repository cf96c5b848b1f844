package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/dispatch"
	"github.com/shimlab/toolshim/internal/messages"
)

var resolvePlan = func(args []string) (*dispatch.Plan, error) {
	return dispatch.Resolve(dispatch.RealSystem{}, args)
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ResolveUse,
		Short: messages.ResolveShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir, err := resolveTreeRoot()
			if err != nil {
				return err
			}
			paths := config.DefaultPaths(rootDir)

			args = stripArgsSeparator(args)
			// A path argv0 pins resolution to the selected tree instead of
			// whatever PATH would find first.
			argv := append([]string{filepath.Join(paths.BinDir, args[0])}, args[1:]...)
			plan, err := resolvePlan(argv)
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	// Flags after the tool name belong to the tool, so parsing must stop at
	// the first positional.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func printPlan(out io.Writer, plan *dispatch.Plan) {
	_, _ = fmt.Fprintf(out, messages.ResolveBackendFmt, plan.Backend)
	_, _ = fmt.Fprintln(out, messages.ResolveArgvHeader)
	for _, arg := range plan.Argv {
		_, _ = fmt.Fprintf(out, messages.ResolveArgvLineFmt, arg)
	}
	if len(plan.Delta) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out, messages.ResolveEnvHeader)
	for _, op := range plan.Delta {
		if op.Prepend {
			_, _ = fmt.Fprintf(out, messages.ResolveEnvPrependFmt, op.Key, op.Value)
			continue
		}
		_, _ = fmt.Fprintf(out, messages.ResolveEnvSetFmt, op.Key, op.Value)
	}
}

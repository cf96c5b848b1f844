package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shimlab/toolshim/internal/messages"
	"github.com/shimlab/toolshim/internal/terminal"
)

var getwd = os.Getwd
var isTerminal = terminal.IsInteractive
var executablePath = os.Executable

// rootFlag holds the --root persistent flag. newRootCmd re-registers it, so
// every execute() starts from an empty value.
var rootFlag string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&rootFlag, "root", "", messages.RootFlagRoot)
	// Registered ahead of cobra's default so the usage line is ours.
	cmd.Flags().Bool("version", false, messages.RootVersionFlag)

	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newResolveCmd())

	return cmd
}

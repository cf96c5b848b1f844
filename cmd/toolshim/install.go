package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/install"
	"github.com/shimlab/toolshim/internal/messages"
)

var installRun = install.Install
var uninstallRun = install.Uninstall

func newInstallCmd() *cobra.Command {
	var force bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, names, err := loadTreeManifest()
			if err != nil {
				return err
			}
			binary, err := executablePath()
			if err != nil {
				return fmt.Errorf(messages.CLILocateBinaryFmt, err)
			}
			opts := install.Options{
				Binary:   binary,
				Force:    force,
				DryRun:   dryRun,
				Prompter: terminalPrompter(cmd),
				Out:      cmd.OutOrStdout(),
				System:   install.RealSystem{},
			}
			return installRun(paths, names, opts)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, messages.InstallFlagForce)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.InstallFlagDryRun)

	return cmd
}

func newUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, names, err := loadTreeManifest()
			if err != nil {
				return err
			}
			binary, err := executablePath()
			if err != nil {
				return fmt.Errorf(messages.CLILocateBinaryFmt, err)
			}
			opts := install.Options{
				Binary: binary,
				DryRun: dryRun,
				Out:    cmd.OutOrStdout(),
				System: install.RealSystem{},
			}
			return uninstallRun(paths, names, opts)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.UninstallFlagDryRun)

	return cmd
}

// loadTreeManifest resolves the tree root and loads its manifest names.
func loadTreeManifest() (config.Paths, []string, error) {
	rootDir, err := resolveTreeRoot()
	if err != nil {
		return config.Paths{}, nil, err
	}
	paths := config.DefaultPaths(rootDir)
	m, err := config.LoadManifest(paths.Manifest)
	if err != nil {
		return config.Paths{}, nil, err
	}
	return paths, m.Names(), nil
}

// terminalPrompter returns a prompter on the command's streams, or nil
// outside an interactive terminal so replacements fail fast without --force.
func terminalPrompter(cmd *cobra.Command) install.Prompter {
	if !isTerminal() {
		return nil
	}
	return install.PromptFuncs{
		OverwriteAllFunc: func(paths []string) (bool, error) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, color.YellowString(messages.InstallOverwriteHeader))
			for _, p := range paths {
				_, _ = fmt.Fprintf(out, messages.InstallOverwriteEntryFmt, p)
			}
			return promptYesNo(cmd.InOrStdin(), out, messages.InstallOverwriteAllPrompt, false)
		},
	}
}

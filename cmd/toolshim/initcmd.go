package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shimlab/toolshim/internal/config"
	"github.com/shimlab/toolshim/internal/fsutil"
	"github.com/shimlab/toolshim/internal/install"
	"github.com/shimlab/toolshim/internal/messages"
	"github.com/shimlab/toolshim/internal/templates"
)

var scanTree = install.Scan

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir, err := resolveInitRoot()
			if err != nil {
				return err
			}
			paths := config.DefaultPaths(rootDir)
			out := cmd.OutOrStdout()
			proposed, err := proposedManifest(out, paths)
			if err != nil {
				return err
			}
			current, err := os.ReadFile(paths.Manifest)
			switch {
			case errors.Is(err, fs.ErrNotExist):
			case err != nil:
				return fmt.Errorf(messages.ConfigReadFailedFmt, paths.Manifest, err)
			case bytes.Equal(current, proposed):
				_, _ = fmt.Fprintln(out, messages.InitManifestUpToDate)
				return nil
			default:
				ok, err := confirmManifestOverwrite(cmd, string(current), string(proposed), force)
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(out, messages.InitOverwriteAborted)
					return nil
				}
			}
			if err := os.MkdirAll(paths.Root, 0o755); err != nil {
				return fmt.Errorf(messages.InstallCreateDirFailedFmt, paths.Root, err)
			}
			if err := fsutil.WriteFileAtomic(paths.Manifest, proposed, 0o644); err != nil {
				return fmt.Errorf(messages.ConfigWriteFailedFmt, paths.Manifest, err)
			}
			_, _ = fmt.Fprintf(out, messages.InitManifestWrittenFmt, paths.Manifest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, messages.InitFlagForce)

	return cmd
}

// proposedManifest renders the manifest init should write: the tool names
// recovered from the tree's backends, or the commented starter template when
// the tree holds nothing to derive them from.
func proposedManifest(out io.Writer, paths config.Paths) ([]byte, error) {
	m, err := scanTree(install.RealSystem{}, paths)
	if err != nil {
		return nil, err
	}
	if len(m.Targets) == 0 {
		_, _ = fmt.Fprintln(out, messages.InitStarterManifestNotice)
		return templates.Read(config.ManifestFileName)
	}
	return config.EncodeManifest(m)
}

// confirmManifestOverwrite shows the pending diff and asks before an existing
// manifest is replaced. force answers yes without asking; outside a terminal
// the question cannot be asked, so the caller must pass --force.
func confirmManifestOverwrite(cmd *cobra.Command, current string, proposed string, force bool) (bool, error) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, messages.InitDiffHeader)
	_, _ = fmt.Fprint(out, install.RenderManifestDiff(current, proposed))
	if force {
		return true, nil
	}
	if !isTerminal() {
		return false, errors.New(messages.InitPromptRequiresTerminal)
	}
	return promptYesNo(cmd.InOrStdin(), out, messages.InitOverwritePrompt, false)
}

// promptYesNo asks a yes/no question and returns the user's choice or an error.
// defaultYes controls the result when the user provides an empty response.
func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(in)
	for {
		if defaultYes {
			if _, err := fmt.Fprintf(out, messages.PromptYesDefaultFmt, prompt); err != nil {
				return false, err
			}
		} else {
			if _, err := fmt.Fprintf(out, messages.PromptNoDefaultFmt, prompt); err != nil {
				return false, err
			}
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			if err == nil {
				return defaultYes, nil
			}
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponse, response)
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}

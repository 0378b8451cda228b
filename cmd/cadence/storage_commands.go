package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cadence/internal/workspace"
)

func newStorageCommand(ctx *commandContext) *cobra.Command {
	storageCmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect persisted workspace data",
	}
	storageCmd.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Report the state of the storage backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				health, err := ws.Health(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, health)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, renderField("Backend", health.Backend))
				fmt.Fprintln(out, renderField("Path", health.Path))
				fmt.Fprintln(out, renderStatusLine("Directory", okOrError(health.DirWritable), writableLabel(health.DirWritable), colorize))
				switch {
				case !health.Exists:
					fmt.Fprintln(out, renderStatusLine("Snapshot", statusInfo, "none stored yet", colorize))
				case health.Error != "":
					fmt.Fprintln(out, renderStatusLine("Snapshot", statusWarn, health.Error, colorize))
				case !health.HasSnapshot:
					fmt.Fprintln(out, renderStatusLine("Snapshot", statusInfo, "no record for namespace", colorize))
				default:
					fmt.Fprintln(out, renderStatusLine("Snapshot", statusOK, fmt.Sprintf("%d bytes", health.Bytes), colorize))
				}
				fmt.Fprintln(out, renderField("Channels", fmt.Sprint(len(ws.Channels()))))
				fmt.Fprintln(out, renderField("Projects", fmt.Sprint(len(ws.Projects()))))
				return nil
			})
		},
	})
	return storageCmd
}

func okOrError(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusError
}

func writableLabel(ok bool) string {
	if ok {
		return "writable"
	}
	return "not writable"
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cadence/internal/workspace"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Check operator credentials",
	}
	sessionCmd.AddCommand(&cobra.Command{
		Use:         "check",
		Short:       "Verify the supplied credentials and print the identity",
		Args:        cobra.NoArgs,
		Annotations: guarded(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				user, ok := ws.User()
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"authenticated": ws.Authenticated(), "user": user})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine("Session", statusOK, "authenticated", shouldColorize(out)))
				if ok {
					fmt.Fprintln(out, renderField("Email", user.Email))
				}
				return nil
			})
		},
	})
	return sessionCmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cadence/internal/workspace"
)

func newViewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "view [grid|list]",
		Short:       "Show or set the channel layout preference",
		Args:        cobra.MaximumNArgs(1),
		Annotations: guarded(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				if len(args) == 1 {
					if err := ws.SetViewMode(args[0]); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "View mode: %s\n", ws.ViewMode())
				return nil
			})
		},
	}
}

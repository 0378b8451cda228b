package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cadence/internal/content"
	"cadence/internal/workspace"
)

func renderSceneTable(scenes []content.Scene, colorize bool) string {
	rows := make([][]string, 0, len(scenes))
	for i, scene := range scenes {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(scene.ID, 10),
			colorStatus(scene.Status, colorize),
			truncate(scene.Description, 48),
			strconv.Itoa(len(scene.Dialogues)),
			strconv.Itoa(len(scene.VideoSources)),
			strconv.Itoa(len(scene.Attachments)),
		})
	}
	return renderTable(
		[]string{"#", "Scene ID", "Status", "Description", "Dialogues", "Sources", "Attachments"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}

func parseSceneID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid scene id %q", value)
	}
	return id, nil
}

func newSceneCommand(ctx *commandContext) *cobra.Command {
	sceneCmd := &cobra.Command{
		Use:         "scene",
		Short:       "Edit the scene timeline of a project",
		Annotations: guarded(),
	}
	sceneCmd.AddCommand(newSceneAddCommand(ctx))
	sceneCmd.AddCommand(newSceneShowCommand(ctx))
	sceneCmd.AddCommand(newSceneUpdateCommand(ctx))
	sceneCmd.AddCommand(newSceneDeleteCommand(ctx))
	return sceneCmd
}

func newSceneAddCommand(ctx *commandContext) *cobra.Command {
	var afterFlag string
	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add an empty scene, optionally after an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var after *int64
			if afterFlag != "" {
				id, err := parseSceneID(afterFlag)
				if err != nil {
					return err
				}
				after = &id
			}
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				scene, ok := ws.AddScene(args[0], after)
				if !ok {
					return ctx.reportMissing(cmd, "project", args[0])
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, scene)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added scene %d to %s\n", scene.ID, args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&afterFlag, "after", "", "Insert after this scene id")
	return cmd
}

func newSceneShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id> <scene-id>",
		Short: "Show every field of a scene",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneID, err := parseSceneID(args[1])
			if err != nil {
				return err
			}
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				scene, ok := ws.Scene(args[0], sceneID)
				if !ok {
					return fmt.Errorf("scene %s not found", content.SceneKey{ProjectID: args[0], SceneID: sceneID})
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, scene)
				}
				writeScene(cmd, scene)
				return nil
			})
		},
	}
}

func writeScene(cmd *cobra.Command, scene content.Scene) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader(fmt.Sprintf("Scene %d", scene.ID), colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Status", sceneStatusKind(scene.Status), string(scene.Status), colorize))
	fmt.Fprintln(out, renderField("Description", scene.Description))
	fmt.Fprintln(out, renderField("Start prompt", scene.Prompts.Start))
	fmt.Fprintln(out, renderField("End prompt", scene.Prompts.End))

	if len(scene.Dialogues) > 0 {
		rows := [][]string{}
		for i, turn := range scene.Dialogues {
			for j, speaker := range []*content.Speaker{turn.Speaker1, turn.Speaker2, turn.Speaker3} {
				if speaker == nil {
					continue
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), fmt.Sprintf("speaker%d", j+1), speaker.VoiceType, speaker.Text})
			}
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"Turn", "Speaker", "Voice", "Text"}, rows, []columnAlignment{alignRight}))
	}
	if len(scene.VideoSources) > 0 {
		rows := [][]string{}
		for _, source := range scene.VideoSources {
			cuts := make([]string, 0, len(source.Cuts))
			for _, cut := range source.Cuts {
				cuts = append(cuts, cut.Part+" "+cut.TimeRange)
			}
			rows = append(rows, []string{source.ID, source.URL, strings.Join(cuts, ", ")})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"Source", "URL", "Cuts"}, rows, nil))
	}
	if len(scene.Attachments) > 0 {
		rows := [][]string{}
		for _, a := range scene.Attachments {
			rows = append(rows, []string{a.Type, a.URL, a.Description})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"Type", "URL", "Description"}, rows, nil))
	}
}

func newSceneUpdateCommand(ctx *commandContext) *cobra.Command {
	var status, description, startPrompt, endPrompt string
	cmd := &cobra.Command{
		Use:   "update <project-id> <scene-id>",
		Short: "Change scene status, description or prompts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneID, err := parseSceneID(args[1])
			if err != nil {
				return err
			}
			var patch content.ScenePatch
			if cmd.Flags().Changed("status") {
				parsed, err := content.ParseSceneStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &parsed
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				if cmd.Flags().Changed("start-prompt") || cmd.Flags().Changed("end-prompt") {
					current, ok := ws.Scene(args[0], sceneID)
					if ok {
						prompts := current.Prompts
						if cmd.Flags().Changed("start-prompt") {
							prompts.Start = startPrompt
						}
						if cmd.Flags().Changed("end-prompt") {
							prompts.End = endPrompt
						}
						patch.Prompts = &prompts
					}
				}
				scene, found, err := ws.UpdateScene(args[0], sceneID, patch)
				if err != nil {
					return err
				}
				if !found {
					return ctx.reportMissing(cmd, "scene", content.SceneKey{ProjectID: args[0], SceneID: sceneID}.String())
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, scene)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated scene %d (%s)\n", scene.ID, scene.Status)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "idle, pending or success")
	cmd.Flags().StringVar(&description, "description", "", "Scene description")
	cmd.Flags().StringVar(&startPrompt, "start-prompt", "", "Prompt for the first frame")
	cmd.Flags().StringVar(&endPrompt, "end-prompt", "", "Prompt for the last frame")
	return cmd
}

func newSceneDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <project-id> <scene-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a scene from the timeline",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneID, err := parseSceneID(args[1])
			if err != nil {
				return err
			}
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				key := content.SceneKey{ProjectID: args[0], SceneID: sceneID}
				if !ws.DeleteScene(args[0], sceneID) {
					return ctx.reportMissing(cmd, "scene", key.String())
				}
				return ctx.reportDeleted(cmd, "scene", key.String(), nil)
			})
		},
	}
}

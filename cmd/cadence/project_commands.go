package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cadence/internal/content"
	"cadence/internal/importer"
	"cadence/internal/views"
	"cadence/internal/workspace"
)

type projectSummary struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	ChannelID string                `json:"channel_id"`
	Status    content.SceneStatus   `json:"status"`
	Progress  views.ProgressSummary `json:"progress"`
	Action    views.Action          `json:"action"`
	ShareURL  string                `json:"share_url"`
}

func summarizeProject(p content.VideoProject, shareBase string) projectSummary {
	return projectSummary{
		ID:        p.ID,
		Title:     p.Title,
		ChannelID: p.ChannelID,
		Status:    views.Status(p),
		Progress:  views.Progress(p),
		Action:    views.ProjectAction(p),
		ShareURL:  views.ShareURL(shareBase, p.ID),
	}
}

func summarizeProjects(projects []content.VideoProject, shareBase string) []projectSummary {
	out := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, summarizeProject(p, shareBase))
	}
	return out
}

func renderProjectTable(projects []content.VideoProject, colorize bool) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		progress := views.Progress(p)
		rows = append(rows, []string{
			p.ID,
			p.Title,
			colorStatus(views.Status(p), colorize),
			fmt.Sprintf("%d/%d", progress.Completed, progress.Total),
			strconv.Itoa(progress.Percent) + "%",
		})
	}
	return renderTable(
		[]string{"ID", "Title", "Status", "Scenes", "Done"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:         "project",
		Short:       "Manage video projects",
		Annotations: guarded(),
	}
	projectCmd.AddCommand(newProjectImportCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectUpdateCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))
	projectCmd.AddCommand(newProjectShareCommand(ctx))
	projectCmd.AddCommand(newProjectSampleCommand())
	return projectCmd
}

func readPayload(cmd *cobra.Command, source string) ([]byte, error) {
	if source == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}

func newProjectImportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	cmd := &cobra.Command{
		Use:   "import <channel-id> <file|->",
		Short: "Create a project from a JSON or TOML definition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := importer.FormatForPath(args[1])
			if cmd.Flags().Changed("format") {
				parsed, err := importer.ParseFormat(formatFlag)
				if err != nil {
					return err
				}
				format = parsed
			}
			data, err := readPayload(cmd, args[1])
			if err != nil {
				return err
			}
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				project, err := ws.ImportProject(args[0], data, format)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, project)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s) with %d scene(s)\n",
					project.ID, project.Title, len(project.Scenes))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&formatFlag, "format", "json", "Payload format: json or toml")
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var channelID string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List video projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				projects := ws.Projects()
				if channelID != "" {
					projects = ws.ProjectsForChannel(channelID)
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, summarizeProjects(projects, ws.ShareBaseURL()))
				}
				out := cmd.OutOrStdout()
				if len(projects) == 0 {
					fmt.Fprintln(out, "No projects")
					return nil
				}
				fmt.Fprint(out, renderProjectTable(projects, shouldColorize(out)))
				fmt.Fprintln(out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&channelID, "channel", "", "Only projects of this channel")
	return cmd
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with its scene timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				project, ok := ws.Project(args[0])
				if !ok {
					return fmt.Errorf("project %s not found", args[0])
				}
				summary := summarizeProject(project, ws.ShareBaseURL())
				if ctx.jsonOutput() {
					return writeJSON(cmd, struct {
						content.VideoProject
						Summary projectSummary `json:"summary"`
					}{project, summary})
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader(project.Title, colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderField("ID", project.ID))
				fmt.Fprintln(out, renderField("Channel", project.ChannelID))
				if strings.TrimSpace(project.Description) != "" {
					fmt.Fprintln(out, renderField("Description", project.Description))
				}
				fmt.Fprintln(out, renderStatusLine("Status", sceneStatusKind(summary.Status),
					fmt.Sprintf("%s, %d/%d scenes done (%d%%)", summary.Status,
						summary.Progress.Completed, summary.Progress.Total, summary.Progress.Percent), colorize))
				fmt.Fprintln(out, renderField("Next", string(summary.Action)))
				fmt.Fprintln(out, renderField("Share", summary.ShareURL))
				fmt.Fprintln(out)
				if len(project.Scenes) == 0 {
					fmt.Fprintln(out, "No scenes")
					return nil
				}
				fmt.Fprint(out, renderSceneTable(project.Scenes, colorize))
				fmt.Fprintln(out)
				return nil
			})
		},
	}
}

func newProjectUpdateCommand(ctx *commandContext) *cobra.Command {
	var title, description, scenesFile string
	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Change the title or description, or replace the scene sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch content.ProjectPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if scenesFile != "" {
				scenes, err := readScenes(cmd, scenesFile)
				if err != nil {
					return err
				}
				patch.Scenes = &scenes
			}
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				project, found, err := ws.UpdateVideoProject(args[0], patch)
				if err != nil {
					return err
				}
				if !found {
					return ctx.reportMissing(cmd, "project", args[0])
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, project)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", project.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&scenesFile, "scenes", "", "JSON file (or -) with a scene array that replaces the current sequence")
	return cmd
}

// readScenes decodes a JSON array of scenes.
func readScenes(cmd *cobra.Command, source string) ([]content.Scene, error) {
	data, err := readPayload(cmd, source)
	if err != nil {
		return nil, err
	}
	scenes := []content.Scene{}
	if err := json.Unmarshal(data, &scenes); err != nil {
		return nil, &content.FormatError{Err: fmt.Errorf("parse scenes: %w", err)}
	}
	return scenes, nil
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <project-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project and its scenes",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				if !ws.DeleteVideoProject(args[0]) {
					return ctx.reportMissing(cmd, "project", args[0])
				}
				return ctx.reportDeleted(cmd, "project", args[0], nil)
			})
		},
	}
}

func newProjectShareCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "share <project-id>",
		Short: "Print the share link of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				url, ok := ws.ShareURL(args[0])
				if !ok {
					return fmt.Errorf("project %s not found", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			})
		},
	}
}

func newProjectSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "sample",
		Short:       "Print an example project definition for import",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true", "requiresSession": "false"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(importer.SampleJSON())
			return err
		},
	}
}

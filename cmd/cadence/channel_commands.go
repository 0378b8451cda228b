package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cadence/internal/content"
	"cadence/internal/views"
	"cadence/internal/workspace"
)

func newChannelCommand(ctx *commandContext) *cobra.Command {
	channelCmd := &cobra.Command{
		Use:         "channel",
		Short:       "Manage channels",
		Annotations: guarded(),
	}
	channelCmd.AddCommand(newChannelAddCommand(ctx))
	channelCmd.AddCommand(newChannelListCommand(ctx))
	channelCmd.AddCommand(newChannelShowCommand(ctx))
	channelCmd.AddCommand(newChannelUpdateCommand(ctx))
	channelCmd.AddCommand(newChannelDeleteCommand(ctx))
	return channelCmd
}

type channelFlags struct {
	title, contact, description, category, language, banner, avatar, apiKey string
}

func (f *channelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Channel title")
	cmd.Flags().StringVar(&f.contact, "contact", "", "Contact address")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.category, "category", "", "Category tag")
	cmd.Flags().StringVar(&f.language, "language", "", "Language code (e.g. ES, EN)")
	cmd.Flags().StringVar(&f.banner, "banner", "", "Banner image reference")
	cmd.Flags().StringVar(&f.avatar, "avatar", "", "Avatar image reference")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Access credential for the channel")
}

func (f *channelFlags) input() content.ChannelInput {
	return content.ChannelInput{
		BannerImage: f.banner,
		AvatarImage: f.avatar,
		Title:       f.title,
		Contact:     f.contact,
		Description: f.description,
		Category:    f.category,
		APIKey:      f.apiKey,
		Language:    f.language,
	}
}

// patch includes only the flags set on the command line.
func (f *channelFlags) patch(cmd *cobra.Command) content.ChannelPatch {
	pick := func(name, value string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return &value
	}
	return content.ChannelPatch{
		BannerImage: pick("banner", f.banner),
		AvatarImage: pick("avatar", f.avatar),
		Title:       pick("title", f.title),
		Contact:     pick("contact", f.contact),
		Description: pick("description", f.description),
		Category:    pick("category", f.category),
		APIKey:      pick("api-key", f.apiKey),
		Language:    pick("language", f.language),
	}
}

func newChannelAddCommand(ctx *commandContext) *cobra.Command {
	var flags channelFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				ch, err := ws.AddChannel(flags.input())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, ch)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created channel %s (%s)\n", ch.ID, ch.Title)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newChannelListCommand(ctx *commandContext) *cobra.Command {
	var filter views.Filter
	var page int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List channels with optional filters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				ws.SetFilter(filter)
				ws.SetCurrentPage(page)
				result := ws.ChannelPage()
				if ctx.jsonOutput() {
					return writeJSON(cmd, result)
				}
				out := cmd.OutOrStdout()
				if result.Total == 0 {
					fmt.Fprintln(out, "No channels match")
					return nil
				}
				rows := make([][]string, 0, len(result.Items))
				for _, ch := range result.Items {
					rows = append(rows, []string{
						ch.ID,
						ch.Title,
						ch.Category,
						ch.Language,
						strconv.Itoa(len(ws.ProjectsForChannel(ch.ID))),
					})
				}
				fmt.Fprint(out, renderTable(
					[]string{"ID", "Title", "Category", "Language", "Projects"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
				fmt.Fprintf(out, "\nPage %d of %d (%d channels, %s view)\n",
					result.Number, max(result.TotalPages, 1), result.Total, ws.ViewMode())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter.Term, "search", "s", "", "Case-insensitive title/description search")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Category filter (\"all\" for any)")
	cmd.Flags().StringVar(&filter.Language, "language", "", "Language filter (\"all\" for any)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	return cmd
}

func newChannelShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <channel-id>",
		Short: "Show a channel and its projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				ch, ok := ws.Channel(args[0])
				if !ok {
					return fmt.Errorf("channel %s not found", args[0])
				}
				projects := ws.ProjectsForChannel(ch.ID)
				if ctx.jsonOutput() {
					return writeJSON(cmd, struct {
						content.Channel
						Projects []projectSummary `json:"projects"`
					}{ch, summarizeProjects(projects, ws.ShareBaseURL())})
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader(ch.Title, colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderField("ID", ch.ID))
				fmt.Fprintln(out, renderField("Contact", ch.Contact))
				fmt.Fprintln(out, renderField("Category", ch.Category))
				fmt.Fprintln(out, renderField("Language", ch.Language))
				if strings.TrimSpace(ch.Description) != "" {
					fmt.Fprintln(out, renderField("Description", ch.Description))
				}
				fmt.Fprintln(out, renderField("API key set", yesNo(ch.APIKey != "")))
				fmt.Fprintln(out, renderField("Created", ch.CreatedAt.Format("2006-01-02 15:04")))
				fmt.Fprintln(out)
				if len(projects) == 0 {
					fmt.Fprintln(out, "No projects")
					return nil
				}
				fmt.Fprint(out, renderProjectTable(projects, colorize))
				fmt.Fprintln(out)
				return nil
			})
		},
	}
}

func newChannelUpdateCommand(ctx *commandContext) *cobra.Command {
	var flags channelFlags
	cmd := &cobra.Command{
		Use:   "update <channel-id>",
		Short: "Change channel fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				ch, found, err := ws.UpdateChannel(args[0], flags.patch(cmd))
				if err != nil {
					return err
				}
				if !found {
					return ctx.reportMissing(cmd, "channel", args[0])
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, ch)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated channel %s\n", ch.ID)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newChannelDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <channel-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a channel and all of its projects",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(func(ws *workspace.Workspace) error {
				cascaded := len(ws.ProjectsForChannel(args[0]))
				if !ws.DeleteChannel(args[0]) {
					return ctx.reportMissing(cmd, "channel", args[0])
				}
				return ctx.reportDeleted(cmd, "channel", args[0], &cascaded)
			})
		},
	}
}

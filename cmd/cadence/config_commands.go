package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cadence/internal/config"
)

// configReport summarizes the effective settings for `config validate`.
type configReport struct {
	Path         string `json:"path"`
	Exists       bool   `json:"exists"`
	Backend      string `json:"backend"`
	Namespace    string `json:"namespace"`
	StatePath    string `json:"state_path"`
	PageSize     int    `json:"page_size"`
	ShareBaseURL string `json:"share_base_url"`
	LogFormat    string `json:"log_format"`
	LogPath      string `json:"log_path"`
}

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(ctx), newConfigValidateCommand(ctx))
	return cmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the sample configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				switch _, statErr := os.Stat(target); {
				case statErr == nil:
					return fmt.Errorf("%s already exists (pass --overwrite to replace it)", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("check %s: %w", target, statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]string{"path": target})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintf(out, "Check it with: cadence config validate --config %s\n", target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination (default ~/.config/cadence/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

// configTarget resolves the init destination, defaulting to the standard path.
func configTarget(flagValue string) (string, error) {
	if value := strings.TrimSpace(flagValue); value != "" {
		return config.ExpandPath(value)
	}
	return config.DefaultConfigPath()
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and show the effective storage settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(*ctx.configFlag))
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			report := configReport{
				Path:         path,
				Exists:       exists,
				Backend:      cfg.Storage.Backend,
				Namespace:    cfg.Storage.Namespace,
				StatePath:    cfg.StatePath(),
				PageSize:     cfg.Views.PageSize,
				ShareBaseURL: cfg.Views.ShareBaseURL,
				LogFormat:    cfg.Logging.Format,
				LogPath:      cfg.LogPath(),
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			renderConfigReport(cmd, report)
			return nil
		},
	}
}

func renderConfigReport(cmd *cobra.Command, r configReport) {
	out := cmd.OutOrStdout()
	source := r.Path
	if !r.Exists {
		source += " (missing; defaults used)"
	}
	fmt.Fprintln(out, renderField("Config", source))
	fmt.Fprintln(out, renderField("Storage", fmt.Sprintf("%s at %s", r.Backend, r.StatePath)))
	fmt.Fprintln(out, renderField("Namespace", r.Namespace))
	fmt.Fprintln(out, renderField("Page size", fmt.Sprintf("%d", r.PageSize)))
	fmt.Fprintln(out, renderField("Share URL", r.ShareBaseURL))
	fmt.Fprintln(out, renderField("Log", fmt.Sprintf("%s to %s", r.LogFormat, r.LogPath)))
	fmt.Fprintln(out, "Configuration valid")
}

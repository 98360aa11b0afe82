package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quizprep/internal/config"
	"quizprep/internal/fileutil"
	"quizprep/internal/preflight"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite && fileutil.Exists(target) {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
			}
			if info, err := os.Stat(target); err == nil && info.IsDir() {
				return fmt.Errorf("config path %s is a directory", target)
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set paths.work_dir (or export QUIZPREP_WORK_DIR) to the directory holding book_index.json and questions.json.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

type configSummary struct {
	ConfigPath   string `json:"config_path"`
	ConfigExists bool   `json:"config_exists"`
	WorkDir      string `json:"work_dir"`
	StripMode    string `json:"strip_mode"`
	StripFormat  string `json:"strip_format"`
	JoinSource   string `json:"join_source"`
	Sanitize     bool   `json:"sanitize"`
	LogLevel     string `json:"log_level"`
	LogFormat    string `json:"log_format"`
	Valid        bool   `json:"valid"`
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			summary := configSummary{
				ConfigPath:   ctx.configPath,
				ConfigExists: ctx.configExists,
				WorkDir:      cfg.Paths.WorkDir,
				StripMode:    cfg.Strip.Mode,
				StripFormat:  cfg.Strip.Format,
				JoinSource:   cfg.Join.Explanations,
				Sanitize:     cfg.Normalize.Sanitize,
				LogLevel:     cfg.Logging.Level,
				LogFormat:    cfg.Logging.Format,
				Valid:        true,
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if summary.ConfigExists {
				fmt.Fprintln(out, renderStatusLine("Config path", statusOK, summary.ConfigPath, colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Config path", statusWarn, summary.ConfigPath+" (not found; defaults used)", colorize))
			}
			workKind := statusOK
			if !preflight.CheckDirectoryAccess("Work dir", summary.WorkDir).Passed {
				workKind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Work dir", workKind, summary.WorkDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Strip", statusInfo, summary.StripMode+"/"+summary.StripFormat, colorize))
			fmt.Fprintln(out, renderStatusLine("Join source", statusInfo, summary.JoinSource, colorize))
			fmt.Fprintln(out, renderStatusLine("Sanitize", statusInfo, yesNo(summary.Sanitize), colorize))
			fmt.Fprintln(out, renderStatusLine("Logging", statusInfo, summary.LogFormat+" at "+summary.LogLevel, colorize))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quizprep/internal/preflight"
	"quizprep/internal/stage"
	"quizprep/internal/workflow"
)

type statusReport struct {
	WorkDir string             `json:"work_dir"`
	Checks  []preflight.Result `json:"checks"`
	Stages  []stage.Health     `json:"stages"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which stages have their inputs in place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			report := statusReport{
				WorkDir: cfg.Paths.WorkDir,
				Checks:  preflight.RunAll(cmd.Context(), cfg),
			}
			for _, h := range workflow.NewStageSet(cfg, logger).All() {
				report.Stages = append(report.Stages, h.HealthCheck(cmd.Context()))
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Work dir", statusInfo, report.WorkDir, colorize))
			for _, check := range report.Checks {
				fmt.Fprintln(out, renderCheckLine(check, colorize))
			}
			for _, h := range report.Stages {
				fmt.Fprintln(out, renderHealthLine(h, colorize))
			}
			return nil
		},
	}
}

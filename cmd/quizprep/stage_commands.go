package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"quizprep/internal/catalog"
	"quizprep/internal/config"
	"quizprep/internal/joiner"
	"quizprep/internal/normalizer"
	"quizprep/internal/stage"
	"quizprep/internal/stripper"
	"quizprep/internal/workflow"
)

// pathFlag binds an optional --flag that replaces one configured path.
type pathFlag struct {
	value  string
	target func(*config.Config) *string
}

func newStripCommand(ctx *commandContext) *cobra.Command {
	input := &pathFlag{target: func(c *config.Config) *string { return &c.Paths.BookIndex }}
	output := &pathFlag{target: func(c *config.Config) *string { return &c.Paths.Explanations }}

	cmd := &cobra.Command{
		Use:   "strip",
		Short: "Remove HTML markup from book index explanations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingleStage(cmd, ctx, []*pathFlag{input, output}, func(cfg *config.Config, r *stageRun) stage.Handler {
				return stripper.NewStripper(cfg, r.logger)
			})
		},
	}
	cmd.Flags().StringVar(&input.value, "input", "", "Book index file (default paths.book_index)")
	cmd.Flags().StringVar(&output.value, "output", "", "Explanation output file (default paths.explanations)")
	return cmd
}

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	input := &pathFlag{target: func(c *config.Config) *string { return &c.Paths.Explanations }}
	output := &pathFlag{target: func(c *config.Config) *string { return &c.Paths.ExplanationsFixed }}

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Repair and re-serialize explanation markup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingleStage(cmd, ctx, []*pathFlag{input, output}, func(cfg *config.Config, r *stageRun) stage.Handler {
				return normalizer.NewNormalizer(cfg, r.logger)
			})
		},
	}
	cmd.Flags().StringVar(&input.value, "input", "", "Explanation file (default paths.explanations)")
	cmd.Flags().StringVar(&output.value, "output", "", "Normalized output file (default paths.explanations_fixed)")
	return cmd
}

func newJoinCommand(ctx *commandContext) *cobra.Command {
	questions := &pathFlag{target: func(c *config.Config) *string { return &c.Paths.Questions }}
	explanations := &pathFlag{target: func(c *config.Config) *string {
		if c.Join.Explanations == config.JoinSourceNormalized {
			return &c.Paths.ExplanationsFixed
		}
		return &c.Paths.Explanations
	}}
	output := &pathFlag{target: func(c *config.Config) *string { return &c.Paths.JoinedQuestions }}

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Embed explanations into questions by book section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingleStage(cmd, ctx, []*pathFlag{questions, explanations, output}, func(cfg *config.Config, r *stageRun) stage.Handler {
				return joiner.NewJoiner(cfg, r.logger)
			})
		},
	}
	cmd.Flags().StringVar(&questions.value, "questions", "", "Question file (default paths.questions)")
	cmd.Flags().StringVar(&explanations.value, "explanations", "", "Explanation file (default depends on join.explanations)")
	cmd.Flags().StringVar(&output.value, "output", "", "Joined output file (default paths.joined_questions)")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	input := &pathFlag{target: func(c *config.Config) *string { return &c.Paths.JoinedQuestions }}
	db := &pathFlag{target: func(c *config.Config) *string { return &c.Paths.CatalogDB }}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Load joined questions into the SQLite catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingleStage(cmd, ctx, []*pathFlag{input, db}, func(cfg *config.Config, r *stageRun) stage.Handler {
				return catalog.NewExporter(cfg, r.logger)
			})
		},
	}
	cmd.Flags().StringVar(&input.value, "input", "", "Joined question file (default paths.joined_questions)")
	cmd.Flags().StringVar(&db.value, "db", "", "Catalog database (default paths.catalog_db)")
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run strip, normalize and join in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newStageRun(ctx, nil)
			if err != nil {
				return err
			}
			stages := workflow.NewStageSet(r.cfg, r.logger)
			return r.execute(cmd, stages.Pipeline(export)...)
		},
	}
	cmd.Flags().BoolVar(&export, "export", false, "Also export the joined questions to the catalog")
	return cmd
}

// stageRun carries the configuration and logger of one command invocation.
type stageRun struct {
	ctx    *commandContext
	cfg    *config.Config
	logger *slog.Logger
}

func newStageRun(ctx *commandContext, overrides []*pathFlag) (*stageRun, error) {
	base, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}

	cfg := *base
	for _, o := range overrides {
		value := strings.TrimSpace(o.value)
		if value == "" {
			continue
		}
		resolved, err := cfg.ResolvePath(value)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", value, err)
		}
		*o.target(&cfg) = resolved
	}
	if err := cfg.Validate(); err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, "", "validate paths", "", err)
	}
	return &stageRun{ctx: ctx, cfg: &cfg, logger: logger}, nil
}

func runSingleStage(cmd *cobra.Command, ctx *commandContext, overrides []*pathFlag, build func(*config.Config, *stageRun) stage.Handler) error {
	r, err := newStageRun(ctx, overrides)
	if err != nil {
		return err
	}
	return r.execute(cmd, build(r.cfg, r))
}

func (r *stageRun) execute(cmd *cobra.Command, handlers ...stage.Handler) error {
	runner := workflow.NewRunner(r.cfg, r.logger, handlers...)
	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	if r.ctx.jsonOutput() {
		return writeJSON(cmd, report)
	}
	printReport(cmd, report)
	return nil
}

package catalog

import (
	"context"
	"log/slog"
	"time"

	"quizprep/internal/config"
	"quizprep/internal/joiner"
	"quizprep/internal/logging"
	"quizprep/internal/stage"
)

// Exporter is the export stage handler. It loads the joined questions into
// the catalog database.
type Exporter struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewExporter constructs the export stage handler.
func NewExporter(cfg *config.Config, logger *slog.Logger) *Exporter {
	return &Exporter{cfg: cfg, logger: logging.NewComponentLogger(logger, "catalog")}
}

func (e *Exporter) Name() string { return stage.NameExport }

func (e *Exporter) HealthCheck(context.Context) stage.Health {
	return stage.CheckInputs(stage.NameExport, e.cfg.Paths.JoinedQuestions)
}

// Run replaces the catalog content with the joined question collection.
func (e *Exporter) Run(ctx context.Context) (stage.Result, error) {
	started := time.Now()
	logger := logging.WithContext(ctx, e.logger)
	input, output := e.cfg.Paths.JoinedQuestions, e.cfg.Paths.CatalogDB

	var questions []joiner.JoinedQuestion
	if err := stage.ReadData(stage.NameExport, input, &questions); err != nil {
		return stage.Result{}, err
	}

	store, err := Open(output)
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrIO, stage.NameExport, "open catalog", output, err)
	}
	defer store.Close()

	version, err := store.Version(ctx)
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrIO, stage.NameExport, "read schema version", output, err)
	}
	logger.Debug("catalog opened", logging.String("db", output), logging.String("schema_version", version))

	if err := store.Replace(ctx, questions); err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrIO, stage.NameExport, "replace catalog", output, err)
	}
	stored, explanations, err := store.Count(ctx)
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrIO, stage.NameExport, "verify catalog", output, err)
	}
	logger.Debug("catalog replaced",
		logging.String("db", output),
		logging.Int("questions", stored),
		logging.Int("explanations", explanations),
	)

	matched := 0
	for _, q := range questions {
		if q.Explanation != nil {
			matched++
		}
	}
	return stage.Result{
		Stage:     stage.NameExport,
		Inputs:    []string{input},
		Output:    output,
		Records:   stored,
		Matched:   matched,
		Unmatched: stored - matched,
		Duration:  time.Since(started),
	}, nil
}

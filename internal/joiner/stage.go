package joiner

import (
	"context"
	"log/slog"
	"time"

	"quizprep/internal/config"
	"quizprep/internal/logging"
	"quizprep/internal/records"
	"quizprep/internal/stage"
)

// Joiner is the join stage handler.
type Joiner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewJoiner constructs the join stage handler.
func NewJoiner(cfg *config.Config, logger *slog.Logger) *Joiner {
	return &Joiner{cfg: cfg, logger: logging.NewComponentLogger(logger, "joiner")}
}

func (j *Joiner) Name() string { return stage.NameJoin }

func (j *Joiner) HealthCheck(context.Context) stage.Health {
	return stage.CheckInputs(stage.NameJoin, j.cfg.Paths.Questions, j.cfg.JoinExplanationsPath())
}

// Run reads the question and explanation collections and writes the joined
// questions.
func (j *Joiner) Run(ctx context.Context) (stage.Result, error) {
	started := time.Now()
	logger := logging.WithContext(ctx, j.logger)
	questionsPath := j.cfg.Paths.Questions
	explanationsPath := j.cfg.JoinExplanationsPath()
	output := j.cfg.Paths.JoinedQuestions

	questions, err := stage.ReadCollection(stage.NameJoin, questionsPath)
	if err != nil {
		return stage.Result{}, err
	}
	explanations, err := stage.ReadCollection(stage.NameJoin, explanationsPath)
	if err != nil {
		return stage.Result{}, err
	}

	joined, stats, err := Join(questions.Data, explanations.Data)
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrValidation, stage.NameJoin, "join records",
			questionsPath+" with "+explanationsPath, err)
	}
	for _, dup := range stats.Duplicates {
		logging.WarnWithContext(logger, "duplicate explanation id ignored", logging.EventDuplicateID,
			logging.Int("id", dup.ID),
			logging.RecordIndex(dup.Index),
			logging.Int("first_index", dup.First),
		)
	}
	logger.Debug("explanations indexed",
		logging.String("input", explanationsPath),
		logging.Int("records", stats.Explanations),
		logging.Int("distinct_ids", stats.DistinctIDs),
	)

	payload, err := records.MarshalData(joined, records.EncodeOptions{Indent: j.cfg.Output.Indent})
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrValidation, stage.NameJoin, "encode output", "", err)
	}
	if err := stage.WriteOutput(stage.NameJoin, output, payload); err != nil {
		return stage.Result{}, err
	}

	return stage.Result{
		Stage:      stage.NameJoin,
		Inputs:     []string{questionsPath, explanationsPath},
		Output:     output,
		Records:    stats.Questions,
		Matched:    stats.Matched,
		Unmatched:  stats.Unmatched,
		Duplicates: len(stats.Duplicates),
		Duration:   time.Since(started),
	}, nil
}

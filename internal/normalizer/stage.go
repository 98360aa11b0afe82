package normalizer

import (
	"context"
	"log/slog"
	"time"

	"quizprep/internal/config"
	"quizprep/internal/logging"
	"quizprep/internal/records"
	"quizprep/internal/stage"
)

// Normalizer is the normalize stage handler.
type Normalizer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewNormalizer constructs the normalize stage handler.
func NewNormalizer(cfg *config.Config, logger *slog.Logger) *Normalizer {
	return &Normalizer{cfg: cfg, logger: logging.NewComponentLogger(logger, "normalizer")}
}

func (n *Normalizer) Name() string { return stage.NameNormalize }

func (n *Normalizer) HealthCheck(context.Context) stage.Health {
	return stage.CheckInputs(stage.NameNormalize, n.cfg.Paths.Explanations)
}

// Run reads the explanation collection and writes its normalized form as a
// bare {"data": [...]} envelope.
func (n *Normalizer) Run(ctx context.Context) (stage.Result, error) {
	started := time.Now()
	logger := logging.WithContext(ctx, n.logger)
	input, output := n.cfg.Paths.Explanations, n.cfg.Paths.ExplanationsFixed

	coll, err := stage.ReadCollection(stage.NameNormalize, input)
	if err != nil {
		return stage.Result{}, err
	}

	fixed, stats, err := Normalize(ctx, coll.Data, Options{Sanitize: n.cfg.Normalize.Sanitize}, n.logger)
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrValidation, stage.NameNormalize, "normalize explanations", input, err)
	}
	if stats.Repaired > 0 {
		logger.Info("repaired malformed markup",
			logging.Event(logging.EventMarkupRepaired),
			logging.Int("repaired", stats.Repaired),
			logging.Int("records", stats.Records),
		)
	}

	payload, err := records.NewCollection(fixed).Marshal(records.EncodeOptions{Indent: n.cfg.Output.Indent})
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrValidation, stage.NameNormalize, "encode output", "", err)
	}
	if err := stage.WriteOutput(stage.NameNormalize, output, payload); err != nil {
		return stage.Result{}, err
	}

	return stage.Result{
		Stage:    stage.NameNormalize,
		Inputs:   []string{input},
		Output:   output,
		Records:  stats.Records,
		Repaired: stats.Repaired,
		Duration: time.Since(started),
	}, nil
}

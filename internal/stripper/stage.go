package stripper

import (
	"context"
	"log/slog"
	"time"

	"quizprep/internal/config"
	"quizprep/internal/logging"
	"quizprep/internal/records"
	"quizprep/internal/stage"
)

// Stripper is the strip stage handler.
type Stripper struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewStripper constructs the strip stage handler.
func NewStripper(cfg *config.Config, logger *slog.Logger) *Stripper {
	return &Stripper{cfg: cfg, logger: logging.NewComponentLogger(logger, "stripper")}
}

func (s *Stripper) Name() string { return stage.NameStrip }

func (s *Stripper) HealthCheck(context.Context) stage.Health {
	return stage.CheckInputs(stage.NameStrip, s.cfg.Paths.BookIndex)
}

// Run reads the book index, strips every explanation and writes the
// explanation collection. Envelope keys other than data are kept.
func (s *Stripper) Run(ctx context.Context) (stage.Result, error) {
	started := time.Now()
	logger := logging.WithContext(ctx, s.logger)
	input, output := s.cfg.Paths.BookIndex, s.cfg.Paths.Explanations

	opts := OptionsFromConfig(s.cfg)
	extractor, err := NewExtractor(opts)
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrConfiguration, stage.NameStrip, "build extractor", "", err)
	}

	coll, err := stage.ReadCollection(stage.NameStrip, input)
	if err != nil {
		return stage.Result{}, err
	}
	logger.Debug("input loaded",
		logging.String("input", input),
		logging.Int("records", len(coll.Data)),
		logging.String("mode", opts.Mode),
		logging.String("format", opts.Format),
	)

	stripped, err := Strip(coll.Data, extractor)
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrValidation, stage.NameStrip, "strip explanations", input, err)
	}

	payload, err := coll.WithData(stripped).Marshal(records.EncodeOptions{Indent: s.cfg.Output.Indent})
	if err != nil {
		return stage.Result{}, stage.Wrap(stage.ErrValidation, stage.NameStrip, "encode output", "", err)
	}
	if err := stage.WriteOutput(stage.NameStrip, output, payload); err != nil {
		return stage.Result{}, err
	}

	return stage.Result{
		Stage:    stage.NameStrip,
		Inputs:   []string{input},
		Output:   output,
		Records:  len(stripped),
		Duration: time.Since(started),
	}, nil
}

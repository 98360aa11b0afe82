package workflow

import (
	"log/slog"

	"quizprep/internal/catalog"
	"quizprep/internal/config"
	"quizprep/internal/joiner"
	"quizprep/internal/normalizer"
	"quizprep/internal/stage"
	"quizprep/internal/stripper"
)

// StageSet holds one handler per stage.
type StageSet struct {
	Strip     stage.Handler
	Normalize stage.Handler
	Join      stage.Handler
	Export    stage.Handler
}

// NewStageSet builds the default handlers from cfg.
func NewStageSet(cfg *config.Config, logger *slog.Logger) StageSet {
	return StageSet{
		Strip:     stripper.NewStripper(cfg, logger),
		Normalize: normalizer.NewNormalizer(cfg, logger),
		Join:      joiner.NewJoiner(cfg, logger),
		Export:    catalog.NewExporter(cfg, logger),
	}
}

// Pipeline returns the handlers of a full run: strip, normalize, join and,
// when export is set, the catalog export.
func (s StageSet) Pipeline(export bool) []stage.Handler {
	handlers := []stage.Handler{s.Strip, s.Normalize, s.Join}
	if export {
		handlers = append(handlers, s.Export)
	}
	return handlers
}

// All returns every handler in pipeline order.
func (s StageSet) All() []stage.Handler {
	return s.Pipeline(true)
}

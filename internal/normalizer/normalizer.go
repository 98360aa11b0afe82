package normalizer

import (
	"context"
	"log/slog"

	"quizprep/internal/logging"
	"quizprep/internal/markup"
	"quizprep/internal/records"
)

// FieldExplanation is the field rewritten by the normalizer.
const FieldExplanation = "explanation"

// Options controls fragment normalization.
type Options struct {
	Sanitize bool
}

// Stats summarizes a normalization pass.
type Stats struct {
	Records  int
	Repaired int
}

// Normalize returns copies of data whose explanation field holds the canonical
// serialization of the original fragment. Records are otherwise unchanged.
// Missing or non-string explanations abort the call.
func Normalize(ctx context.Context, data []records.Record, opts Options, logger *slog.Logger) ([]records.Record, Stats, error) {
	logger = logging.WithContext(ctx, logger)
	out := make([]records.Record, len(data))
	stats := Stats{Records: len(data)}

	for i, rec := range data {
		fragment, err := rec.String(FieldExplanation)
		if err != nil {
			return nil, Stats{}, records.AtIndex(err, i)
		}

		canonical, err := Fragment(fragment, opts)
		if err != nil {
			return nil, Stats{}, &records.FieldError{Index: i, Field: FieldExplanation, Err: err}
		}
		if canonical != fragment {
			stats.Repaired++
			logger.Debug("markup repaired",
				logging.Event(logging.EventMarkupRepaired),
				logging.RecordIndex(i),
				logging.Any("reason", records.ErrMalformedMarkup),
				logging.Int("input_bytes", len(fragment)),
				logging.Int("output_bytes", len(canonical)),
			)
		}

		fixed := rec.Clone()
		if err := fixed.SetString(FieldExplanation, canonical); err != nil {
			return nil, Stats{}, records.AtIndex(err, i)
		}
		out[i] = fixed
	}
	return out, stats, nil
}

// Fragment normalizes a single fragment, sanitizing it first when requested.
func Fragment(fragment string, opts Options) (string, error) {
	if opts.Sanitize {
		fragment = markup.Sanitize(fragment)
	}
	return markup.Normalize(fragment)
}

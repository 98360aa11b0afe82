package logging

import (
	"context"
	"log/slog"

	"quizprep/internal/stage"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldStage is the standardized structured logging key for stage names.
	FieldStage = "stage"
	// FieldCorrelationID is the standardized structured logging key for run identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType classifies notable log lines for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldErrorKind carries the stage.Kind classification of a failure.
	FieldErrorKind = "error_kind"
	// FieldRecordIndex is the position of a record inside its collection.
	FieldRecordIndex = "record_index"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if name, ok := stage.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, name))
	}
	if id, ok := stage.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}

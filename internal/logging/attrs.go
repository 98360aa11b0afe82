package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

// Event types carried in FieldEventType.
const (
	EventStageStart     = "stage_start"
	EventStageComplete  = "stage_complete"
	EventStageFailed    = "stage_failed"
	EventMarkupRepaired = "markup_repaired"
	EventDuplicateID    = "duplicate_explanation_id"
)

var defaultHints = map[string]string{
	EventDuplicateID: "remove or renumber the repeated explanation",
	EventStageFailed: "run quizprep status to check the stage inputs",
}

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Event tags a line with one of the Event* types.
func Event(eventType string) Attr { return slog.String(FieldEventType, eventType) }

// RecordIndex names the position of a record inside its collection.
func RecordIndex(index int) Attr { return slog.Int(FieldRecordIndex, index) }

func Hint(hint string) Attr { return slog.String(FieldErrorHint, hint) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func attrsToArgs(attrs []Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func Args(attrs ...Attr) []any {
	return attrsToArgs(attrs)
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// HasAttrKey returns true if any attribute in attrs has the given key.
func HasAttrKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// WarnWithContext logs a warning with enforced event_type and error_hint fields.
// A missing hint falls back to the default for eventType.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	logger.Warn(msg, Args(withEventFields(attrs, eventType, "check the input file")...)...)
}

// ErrorWithContext logs an error with enforced event_type and error_hint fields.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	logger.Error(msg, Args(withEventFields(attrs, eventType, "check logs for details")...)...)
}

func withEventFields(attrs []Attr, eventType, fallbackHint string) []Attr {
	if !HasAttrKey(attrs, FieldEventType) {
		attrs = append(attrs, Event(eventType))
	}
	if !HasAttrKey(attrs, FieldErrorHint) {
		hint, ok := defaultHints[eventType]
		if !ok {
			hint = fallbackHint
		}
		attrs = append(attrs, Hint(hint))
	}
	return attrs
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }

// Package logging assembles the structured slog loggers used by quizprep.
//
// It owns the console and JSON handlers, level and output plumbing, and
// context-aware helpers that tag log lines with the run id and stage name.
// Logs go to stderr (plus an optional file) so stdout stays free for command
// results. NewNop provides a silent logger for tests and wiring code.
package logging

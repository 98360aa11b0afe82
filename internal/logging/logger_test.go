package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quizprep/internal/config"
	"quizprep/internal/logging"
	"quizprep/internal/stage"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "quizprep.log")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("file message", logging.Args(logging.Int("records", 3))...)

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "file message records=3") {
		t.Fatalf("unexpected log content %q", content)
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "joiner").Info("stage completed",
		logging.Args(logging.String("output", "questions new.json"), logging.Int("matched", 2))...)
	logger.Debug("hidden debug line")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(string(content))
	if !strings.Contains(line, " INFO joiner: stage completed") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, `output="questions new.json" matched=2`) {
		t.Fatalf("expected quoted attrs, got %q", line)
	}
	if strings.Contains(line, "hidden debug line") {
		t.Fatal("debug line should be filtered at info level")
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLoggerFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("json message", logging.Args(logging.Error(errors.New("boom")))...)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, content)
	}
	if entry["level"] != "warn" || entry["msg"] != "json message" || entry["error"] != "boom" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := stage.WithRunID(context.Background(), "run-xyz")
	ctx = stage.WithStage(ctx, stage.NameNormalize)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logging.WithContext(ctx, logger).Info("contextual log")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry[logging.FieldStage] != stage.NameNormalize {
		t.Fatalf("stage field = %v", entry[logging.FieldStage])
	}
	if entry[logging.FieldCorrelationID] != "run-xyz" {
		t.Fatalf("correlation field = %v", entry[logging.FieldCorrelationID])
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logging.WarnWithContext(logger, "duplicate explanation id", logging.EventDuplicateID, logging.Int("id", 4))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry[logging.FieldEventType] != "duplicate_explanation_id" {
		t.Fatalf("event_type = %v", entry[logging.FieldEventType])
	}
	if entry[logging.FieldErrorHint] != "remove or renumber the repeated explanation" {
		t.Fatalf("error_hint = %v", entry[logging.FieldErrorHint])
	}

	logging.WarnWithContext(nil, "ignored", "noop")
	logging.NewNop().Info("discarded")
}

func TestConsoleLoggerRunHeader(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-run.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := stage.WithRunID(context.Background(), "1f0c2a9b-7d4e-4c1a-9a55-0c3f1e2d4b6a")
	ctx = stage.WithStage(ctx, stage.NameJoin)
	logging.WithContext(ctx, logging.NewComponentLogger(logger, "workflow")).Info("stage completed",
		logging.Args(logging.Event(logging.EventStageComplete), logging.Duration("duration", 1234567*time.Nanosecond))...)

	line := strings.TrimSpace(readLog(t, logPath))
	if !strings.Contains(line, " INFO [join 1f0c2a9b] workflow: stage completed") {
		t.Fatalf("expected run header, got %q", line)
	}
	if strings.Contains(line, "correlation_id=") || strings.Contains(line, " stage=") {
		t.Fatalf("header fields should not repeat as attrs, got %q", line)
	}
	if !strings.Contains(line, "event_type=stage_complete duration=1ms") {
		t.Fatalf("expected rounded duration, got %q", line)
	}
}

func TestErrorWithContextUsesEventHint(t *testing.T) {
	tests := []struct {
		eventType string
		hint      string
	}{
		{eventType: logging.EventStageFailed, hint: "run quizprep status to check the stage inputs"},
		{eventType: "other_failure", hint: "check logs for details"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logging.ErrorWithContext(slog.New(slog.NewJSONHandler(&buf, nil)), "failed", tt.eventType)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		if entry[logging.FieldEventType] != tt.eventType || entry[logging.FieldErrorHint] != tt.hint {
			t.Fatalf("%s: unexpected entry %v", tt.eventType, entry)
		}
	}
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

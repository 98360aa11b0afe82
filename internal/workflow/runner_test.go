package workflow_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"quizprep/internal/stage"
	"quizprep/internal/testsupport"
	"quizprep/internal/workflow"
)

type fakeHandler struct {
	name    string
	err     error
	calls   int
	runID   string
	stageID string
}

func (f *fakeHandler) Name() string { return f.name }

func (f *fakeHandler) HealthCheck(context.Context) stage.Health { return stage.Healthy(f.name) }

func (f *fakeHandler) Run(ctx context.Context) (stage.Result, error) {
	f.calls++
	f.runID, _ = stage.RunIDFromContext(ctx)
	f.stageID, _ = stage.StageFromContext(ctx)
	if f.err != nil {
		return stage.Result{}, f.err
	}
	return stage.Result{Stage: f.name, Records: 1}, nil
}

func TestRunnerRunsStagesInOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := &fakeHandler{name: "first"}
	second := &fakeHandler{name: "second"}

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	report, err := workflow.NewRunner(cfg, logger, first, second).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(report.Results) != 2 || report.Results[0].Stage != "first" || report.Results[1].Stage != "second" {
		t.Fatalf("unexpected results %+v", report.Results)
	}
	if report.RunID == "" || first.runID != report.RunID || second.runID != report.RunID {
		t.Fatalf("run id not propagated: report=%q first=%q second=%q", report.RunID, first.runID, second.runID)
	}
	if first.stageID != "first" || second.stageID != "second" {
		t.Fatalf("stage names not propagated: %q %q", first.stageID, second.stageID)
	}
	if !strings.Contains(logs.String(), `"correlation_id":"`+report.RunID+`"`) {
		t.Fatalf("expected correlation id in logs: %s", logs.String())
	}
	if !strings.Contains(logs.String(), `"event_type":"stage_complete"`) {
		t.Fatalf("expected stage_complete events: %s", logs.String())
	}
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	boom := stage.Wrap(stage.ErrValidation, "first", "check", "bad record", nil)
	first := &fakeHandler{name: "first"}
	failing := &fakeHandler{name: "failing", err: boom}
	last := &fakeHandler{name: "last"}

	report, err := workflow.NewRunner(cfg, nil, first, failing, last).Run(context.Background())
	if !errors.Is(err, stage.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if last.calls != 0 {
		t.Fatal("stage after failure should not run")
	}
	if len(report.Results) != 1 || report.Results[0].Stage != "first" {
		t.Fatalf("expected only the first result, got %+v", report.Results)
	}
}

func TestRunnerFailsFastWhenLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	held := flock.New(cfg.Paths.LockFile)
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("failed to take lock: %v", err)
	}
	defer held.Unlock()

	handler := &fakeHandler{name: "first"}
	_, err = workflow.NewRunner(cfg, nil, handler).Run(context.Background())
	if !errors.Is(err, workflow.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if handler.calls != 0 {
		t.Fatal("handler should not run without the lock")
	}
}

func TestRunnerReleasesLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := workflow.NewRunner(cfg, nil, &fakeHandler{name: "first"})
	for i := 0; i < 2; i++ {
		if _, err := runner.Run(context.Background()); err != nil {
			t.Fatalf("run #%d: %v", i, err)
		}
	}
}

func TestRunnerHonorsCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	handler := &fakeHandler{name: "first"}
	_, err := workflow.NewRunner(cfg, nil, handler).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if handler.calls != 0 {
		t.Fatal("handler should not run after cancellation")
	}
}

func TestRunnerStopsOnFailedPreflight(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Logging.File = filepath.Join(t.TempDir(), "gone", "quizprep.log")

	handler := &fakeHandler{name: "first"}
	_, err := workflow.NewRunner(cfg, nil, handler).Run(context.Background())
	if !errors.Is(err, stage.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Log directory") {
		t.Fatalf("expected failing check name in error, got %v", err)
	}
	if handler.calls != 0 {
		t.Fatal("handler should not run after a failed preflight")
	}
}

package stripper_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"quizprep/internal/config"
	"quizprep/internal/logging"
	"quizprep/internal/records"
	"quizprep/internal/stage"
	"quizprep/internal/stripper"
	"quizprep/internal/testsupport"
)

func TestStripperRunWritesExplanations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg.Paths.BookIndex,
		`{"version":2,"data":[{"id":1,"explanation":"<p>Hi <b>there</b></p>"},{"id":2,"explanation":"A &lt; B"}]}`)

	handler := stripper.NewStripper(cfg, logging.NewNop())
	if h := handler.HealthCheck(context.Background()); !h.Ready {
		t.Fatalf("expected ready stage, got %+v", h)
	}

	result, err := handler.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Stage != stage.NameStrip || result.Records != 2 || result.Output != cfg.Paths.Explanations {
		t.Fatalf("unexpected result %+v", result)
	}

	got := testsupport.ReadFile(t, cfg.Paths.Explanations)
	want := `{"version":2,"data":[{"id":1,"explanation":"Hi there"},{"id":2,"explanation":"A &lt; B"}]}` + "\n"
	if got != want {
		t.Fatalf("output = %s, want %s", got, want)
	}
}

func TestStripperRunPatternMode(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStripMode(config.StripModePattern))
	testsupport.WriteCollection(t, cfg.Paths.BookIndex, `{"id":1,"explanation":"<p>A &lt; B</p>"}`)

	if _, err := stripper.NewStripper(cfg, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	data := testsupport.ReadData(t, cfg.Paths.Explanations)
	if data[0]["explanation"] != "A &lt; B" {
		t.Fatalf("unexpected explanation %v", data[0]["explanation"])
	}
}

func TestStripperRunKeepsPreviousOutputOnFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteCollection(t, cfg.Paths.BookIndex, `{"id":1,"explanation":"ok"}`, `{"id":2}`)
	testsupport.WriteFile(t, cfg.Paths.Explanations, "previous")

	_, err := stripper.NewStripper(cfg, logging.NewNop()).Run(context.Background())
	if !errors.Is(err, stage.ErrValidation) || !errors.Is(err, records.ErrMissingField) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := testsupport.ReadFile(t, cfg.Paths.Explanations); got != "previous" {
		t.Fatalf("output was modified: %q", got)
	}
}

func TestStripperRunMissingInput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	handler := stripper.NewStripper(cfg, logging.NewNop())

	if h := handler.HealthCheck(context.Background()); h.Ready {
		t.Fatal("expected stage to report missing input")
	}
	_, err := handler.Run(context.Background())
	if !errors.Is(err, stage.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
	if _, statErr := os.Stat(cfg.Paths.Explanations); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file, got %v", statErr)
	}
}

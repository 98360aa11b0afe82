package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"quizprep/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.WorkDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 1 || results[0].Name != "Work directory" || !results[0].Passed {
		t.Fatalf("unexpected results %+v", results)
	}
	if _, failed := Failed(results); failed {
		t.Fatal("expected no failures")
	}

	external := t.TempDir()
	cfg.Paths.CatalogDB = filepath.Join(external, "catalog.db")
	cfg.Logging.File = filepath.Join(t.TempDir(), "missing", "quizprep.log")

	results = RunAll(context.Background(), cfg)
	if len(results) != 3 {
		t.Fatalf("expected catalog and log checks, got %+v", results)
	}
	failed, ok := Failed(results)
	if !ok || failed.Name != "Log directory" {
		t.Fatalf("expected log directory failure, got %+v", failed)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil, got %+v", results)
	}
}

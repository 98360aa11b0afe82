package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"quizprep/internal/config"
)

func TestLoadDefaultsResolveAgainstWorkDirEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	t.Setenv("QUIZPREP_WORK_DIR", workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.WorkDir != workDir {
		t.Fatalf("unexpected work dir: got %q want %q", cfg.Paths.WorkDir, workDir)
	}
	wants := map[string]string{
		cfg.Paths.BookIndex:         "book_index.json",
		cfg.Paths.Explanations:      "explanation.json",
		cfg.Paths.ExplanationsFixed: "explanation_fixed.json",
		cfg.Paths.Questions:         "questions.json",
		cfg.Paths.JoinedQuestions:   "questions-new.json",
		cfg.Paths.CatalogDB:         "questions.db",
		cfg.Paths.LockFile:          ".quizprep.lock",
	}
	for got, name := range wants {
		if got != filepath.Join(workDir, name) {
			t.Fatalf("expected %s under work dir, got %q", name, got)
		}
	}
	if cfg.Strip.Mode != config.StripModeParser || cfg.Strip.Format != config.StripFormatText {
		t.Fatalf("unexpected strip defaults: %+v", cfg.Strip)
	}
	if cfg.JoinExplanationsPath() != cfg.Paths.Explanations {
		t.Fatalf("expected joiner to read stripped explanations by default, got %q", cfg.JoinExplanationsPath())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QUIZPREP_WORK_DIR", "")
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	configPath := filepath.Join(dir, "quizprep.toml")

	contents := strings.Join([]string{
		"[paths]",
		"work_dir = " + quote(dataDir),
		`questions = "bank/questions.json"`,
		`catalog_db = "/tmp/quizprep-test.db"`,
		"[strip]",
		`mode = " PATTERN "`,
		"[join]",
		`explanations = "normalized"`,
		"[logging]",
		`level = "DEBUG"`,
		`file = "logs/run.log"`,
	}, "\n")
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %s to be used, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.Questions != filepath.Join(dataDir, "bank", "questions.json") {
		t.Fatalf("unexpected questions path %q", cfg.Paths.Questions)
	}
	if cfg.Paths.CatalogDB != "/tmp/quizprep-test.db" {
		t.Fatalf("absolute path should be kept, got %q", cfg.Paths.CatalogDB)
	}
	if cfg.Strip.Mode != config.StripModePattern {
		t.Fatalf("expected normalized strip mode, got %q", cfg.Strip.Mode)
	}
	if cfg.JoinExplanationsPath() != filepath.Join(dataDir, "explanation_fixed.json") {
		t.Fatalf("unexpected join explanations path %q", cfg.JoinExplanationsPath())
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased level, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.File != filepath.Join(dataDir, "logs", "run.log") {
		t.Fatalf("unexpected log file %q", cfg.Logging.File)
	}
}

func TestLoadOverridesApplyBeforeResolution(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"),
		config.WithWorkDir(workDir),
		config.WithLogLevel("warn"),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.BookIndex != filepath.Join(workDir, "book_index.json") {
		t.Fatalf("override work dir not applied: %q", cfg.Paths.BookIndex)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("override log level not applied: %q", cfg.Logging.Level)
	}

	resolved, err := cfg.ResolvePath("other.json")
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if resolved != filepath.Join(workDir, "other.json") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{name: "strip mode", mutate: func(c *config.Config) { c.Strip.Mode = "soup" }, want: "strip.mode"},
		{name: "strip format", mutate: func(c *config.Config) { c.Strip.Format = "rtf" }, want: "strip.format"},
		{name: "markdown needs parser", mutate: func(c *config.Config) {
			c.Strip.Mode = config.StripModePattern
			c.Strip.Format = config.StripFormatMarkdown
		}, want: "requires strip.mode"},
		{name: "join source", mutate: func(c *config.Config) { c.Join.Explanations = "raw" }, want: "join.explanations"},
		{name: "stage overwrites input", mutate: func(c *config.Config) { c.Paths.Explanations = c.Paths.BookIndex }, want: "overwrite its input"},
		{name: "log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, want: "logging.format"},
		{name: "log level", mutate: func(c *config.Config) { c.Logging.Level = "trace" }, want: "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[strip]\nmodes = \"parser\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if decoded.Strip.Mode != config.StripModeParser {
		t.Fatalf("unexpected sample strip mode %q", decoded.Strip.Mode)
	}

	if _, _, _, err := config.Load(path, config.WithWorkDir(dir)); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func quote(s string) string {
	return "'" + s + "'"
}

package testsupport

import (
	"path/filepath"
	"testing"

	"quizprep/internal/config"
)

// ConfigOption customizes the generated test configuration before paths are
// resolved and validated.
type ConfigOption func(*config.Config)

// NewConfig produces a validated config whose work directory is a unique temp
// directory. It applies any provided options before normalization.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	overrides := []config.Override{config.WithWorkDir(base)}
	for _, opt := range opts {
		overrides = append(overrides, config.Override(opt))
	}

	cfg, _, _, err := config.Load(filepath.Join(base, "quizprep.toml"), overrides...)
	if err != nil {
		t.Fatalf("load test config: %v", err)
	}
	return cfg
}

// WithStripMode overrides the strip extraction mode.
func WithStripMode(mode string) ConfigOption {
	return func(c *config.Config) {
		c.Strip.Mode = mode
	}
}

// WithStripFormat overrides the strip output format.
func WithStripFormat(format string) ConfigOption {
	return func(c *config.Config) {
		c.Strip.Format = format
	}
}

// WithJoinSource selects the explanation collection used by the joiner.
func WithJoinSource(source string) ConfigOption {
	return func(c *config.Config) {
		c.Join.Explanations = source
	}
}

// WithSanitize enables sanitizing in the normalizer.
func WithSanitize() ConfigOption {
	return func(c *config.Config) {
		c.Normalize.Sanitize = true
	}
}

// BaseDir returns the temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return cfg.Paths.WorkDir
}

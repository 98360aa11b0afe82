package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the data files exchanged between stages. Relative entries
// resolve against WorkDir.
type Paths struct {
	WorkDir           string `toml:"work_dir"`
	BookIndex         string `toml:"book_index"`
	Explanations      string `toml:"explanations"`
	ExplanationsFixed string `toml:"explanations_fixed"`
	Questions         string `toml:"questions"`
	JoinedQuestions   string `toml:"joined_questions"`
	CatalogDB         string `toml:"catalog_db"`
	LockFile          string `toml:"lock_file"`
}

// Strip controls how explanation markup is turned into text.
type Strip struct {
	Mode               string `toml:"mode"`   // "parser" or "pattern"
	Format             string `toml:"format"` // "text" or "markdown"
	UnicodeNFC         bool   `toml:"unicode_nfc"`
	CollapseWhitespace bool   `toml:"collapse_whitespace"`
}

// Normalize controls markup repair.
type Normalize struct {
	// Sanitize drops scripts, event handlers and unsafe URLs before the
	// fragment is re-serialized.
	Sanitize bool `toml:"sanitize"`
}

// Join selects the explanation collection used by the joiner.
type Join struct {
	Explanations string `toml:"explanations"` // "stripped" or "normalized"
}

// Output controls JSON formatting of stage outputs.
type Output struct {
	Indent bool `toml:"indent"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for quizprep.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Strip     Strip     `toml:"strip"`
	Normalize Normalize `toml:"normalize"`
	Join      Join      `toml:"join"`
	Output    Output    `toml:"output"`
	Logging   Logging   `toml:"logging"`
}

// Override adjusts a decoded configuration before it is normalized, so
// command-line flags take part in path resolution and validation.
type Override func(*Config)

// WithWorkDir replaces the working directory.
func WithWorkDir(dir string) Override {
	return func(c *Config) {
		if strings.TrimSpace(dir) != "" {
			c.Paths.WorkDir = dir
		}
	}
}

// WithLogLevel replaces the log level.
func WithLogLevel(level string) Override {
	return func(c *Config) {
		if strings.TrimSpace(level) != "" {
			c.Logging.Level = level
		}
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/quizprep/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has every path expanded and resolved against the working directory.
func Load(path string, overrides ...Override) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	for _, override := range overrides {
		if override != nil {
			override(&cfg)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("quizprep.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// JoinExplanationsPath returns the explanation collection the joiner reads.
func (c *Config) JoinExplanationsPath() string {
	if c.Join.Explanations == JoinSourceNormalized {
		return c.Paths.ExplanationsFixed
	}
	return c.Paths.Explanations
}

// ResolvePath resolves a user-supplied path the same way configured paths are
// resolved: tilde expansion, then relative to the working directory.
func (c *Config) ResolvePath(value string) (string, error) {
	return resolveAgainst(c.Paths.WorkDir, value)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func resolveAgainst(base, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if strings.HasPrefix(value, "~") || filepath.IsAbs(value) {
		return expandPath(value)
	}
	return expandPath(filepath.Join(base, value))
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

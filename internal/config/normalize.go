package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStrip()
	c.Join.Explanations = strings.ToLower(strings.TrimSpace(c.Join.Explanations))
	if c.Join.Explanations == "" {
		c.Join.Explanations = JoinSourceStripped
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	workDir := strings.TrimSpace(c.Paths.WorkDir)
	if workDir == "" {
		if value, ok := os.LookupEnv(workDirEnv); ok && strings.TrimSpace(value) != "" {
			workDir = strings.TrimSpace(value)
		} else {
			workDir = defaultWorkDir
		}
	}
	var err error
	if c.Paths.WorkDir, err = expandPath(workDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}

	files := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.book_index", &c.Paths.BookIndex, defaultBookIndex},
		{"paths.explanations", &c.Paths.Explanations, defaultExplanations},
		{"paths.explanations_fixed", &c.Paths.ExplanationsFixed, defaultExplanationsFixed},
		{"paths.questions", &c.Paths.Questions, defaultQuestions},
		{"paths.joined_questions", &c.Paths.JoinedQuestions, defaultJoinedQuestions},
		{"paths.catalog_db", &c.Paths.CatalogDB, defaultCatalogDB},
		{"paths.lock_file", &c.Paths.LockFile, defaultLockFile},
	}
	for _, f := range files {
		if strings.TrimSpace(*f.value) == "" {
			*f.value = f.fallback
		}
		if *f.value, err = resolveAgainst(c.Paths.WorkDir, *f.value); err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
	}
	return nil
}

func (c *Config) normalizeStrip() {
	c.Strip.Mode = strings.ToLower(strings.TrimSpace(c.Strip.Mode))
	if c.Strip.Mode == "" {
		c.Strip.Mode = StripModeParser
	}
	c.Strip.Format = strings.ToLower(strings.TrimSpace(c.Strip.Format))
	if c.Strip.Format == "" {
		c.Strip.Format = StripFormatText
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = resolveAgainst(c.Paths.WorkDir, c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

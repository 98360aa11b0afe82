package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStrip(); err != nil {
		return err
	}
	if err := c.validateJoin(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStrip() error {
	switch c.Strip.Mode {
	case StripModeParser, StripModePattern:
	default:
		return fmt.Errorf("strip.mode: unsupported value %q (use %q or %q)", c.Strip.Mode, StripModeParser, StripModePattern)
	}
	switch c.Strip.Format {
	case StripFormatText:
	case StripFormatMarkdown:
		if c.Strip.Mode != StripModeParser {
			return errors.New("strip.format = \"markdown\" requires strip.mode = \"parser\"")
		}
	default:
		return fmt.Errorf("strip.format: unsupported value %q (use %q or %q)", c.Strip.Format, StripFormatText, StripFormatMarkdown)
	}
	return nil
}

func (c *Config) validateJoin() error {
	switch c.Join.Explanations {
	case JoinSourceStripped, JoinSourceNormalized:
		return nil
	default:
		return fmt.Errorf("join.explanations: unsupported value %q (use %q or %q)", c.Join.Explanations, JoinSourceStripped, JoinSourceNormalized)
	}
}

// validatePaths rejects layouts where a stage would overwrite its own input.
func (c *Config) validatePaths() error {
	pairs := []struct {
		stage  string
		input  string
		output string
	}{
		{"strip", c.Paths.BookIndex, c.Paths.Explanations},
		{"normalize", c.Paths.Explanations, c.Paths.ExplanationsFixed},
		{"join", c.Paths.Questions, c.Paths.JoinedQuestions},
		{"join", c.JoinExplanationsPath(), c.Paths.JoinedQuestions},
	}
	for _, p := range pairs {
		if p.input == p.output {
			return fmt.Errorf("paths: %s stage would overwrite its input %s", p.stage, p.input)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use \"console\" or \"json\")", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

package stripper

import (
	"fmt"

	"quizprep/internal/config"
	"quizprep/internal/markup"
	"quizprep/internal/textutil"
)

// Extractor turns one explanation fragment into its stripped form.
type Extractor interface {
	Extract(fragment string) (string, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(string) (string, error)

// Extract calls f.
func (f ExtractorFunc) Extract(fragment string) (string, error) { return f(fragment) }

// Options selects the extractor built by NewExtractor.
type Options struct {
	Mode   string
	Format string
	Clean  textutil.Options
}

// OptionsFromConfig maps the [strip] section onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Mode:   cfg.Strip.Mode,
		Format: cfg.Strip.Format,
		Clean: textutil.Options{
			NFC:            cfg.Strip.UnicodeNFC,
			CollapseSpaces: cfg.Strip.CollapseWhitespace,
		},
	}
}

// NewExtractor builds the extractor described by opts.
func NewExtractor(opts Options) (Extractor, error) {
	var base Extractor
	switch opts.Mode {
	case config.StripModePattern:
		if opts.Format == config.StripFormatMarkdown {
			return nil, fmt.Errorf("markdown output requires the %q mode", config.StripModeParser)
		}
		base = ExtractorFunc(func(fragment string) (string, error) {
			return markup.StripTags(fragment), nil
		})
	case config.StripModeParser, "":
		switch opts.Format {
		case config.StripFormatMarkdown:
			base = ExtractorFunc(markup.NewMarkdownConverter().Convert)
		case config.StripFormatText, "":
			base = ExtractorFunc(markup.Text)
		default:
			return nil, fmt.Errorf("unsupported strip format %q", opts.Format)
		}
	default:
		return nil, fmt.Errorf("unsupported strip mode %q", opts.Mode)
	}

	if opts.Clean == (textutil.Options{}) {
		return base, nil
	}
	return ExtractorFunc(func(fragment string) (string, error) {
		text, err := base.Extract(fragment)
		if err != nil {
			return "", err
		}
		return textutil.Clean(text, opts.Clean), nil
	}), nil
}

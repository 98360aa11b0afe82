package config

const (
	defaultWorkDir           = "."
	defaultBookIndex         = "book_index.json"
	defaultExplanations      = "explanation.json"
	defaultExplanationsFixed = "explanation_fixed.json"
	defaultQuestions         = "questions.json"
	defaultJoinedQuestions   = "questions-new.json"
	defaultCatalogDB         = "questions.db"
	defaultLockFile          = ".quizprep.lock"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"

	// StripModeParser extracts text through the tolerant HTML parser.
	StripModeParser = "parser"
	// StripModePattern removes tags with the legacy regular expression.
	StripModePattern = "pattern"

	// StripFormatText emits plain text.
	StripFormatText = "text"
	// StripFormatMarkdown emits CommonMark.
	StripFormatMarkdown = "markdown"

	// JoinSourceStripped joins against the stripper output.
	JoinSourceStripped = "stripped"
	// JoinSourceNormalized joins against the normalizer output.
	JoinSourceNormalized = "normalized"

	workDirEnv = "QUIZPREP_WORK_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			BookIndex:         defaultBookIndex,
			Explanations:      defaultExplanations,
			ExplanationsFixed: defaultExplanationsFixed,
			Questions:         defaultQuestions,
			JoinedQuestions:   defaultJoinedQuestions,
			CatalogDB:         defaultCatalogDB,
			LockFile:          defaultLockFile,
		},
		Strip: Strip{
			Mode:   StripModeParser,
			Format: StripFormatText,
		},
		Join: Join{
			Explanations: JoinSourceStripped,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

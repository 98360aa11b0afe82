// Package config loads, normalizes, and validates quizprep configuration.
//
// It supplies repository defaults, reads TOML files, honours the
// QUIZPREP_WORK_DIR environment fallback, and resolves every data file path
// against the working directory so stages receive absolute, cleaned paths.
//
// Always obtain settings through this package so stages see the same file
// layout and clear validation errors.
package config

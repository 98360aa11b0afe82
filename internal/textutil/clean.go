package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Options selects the clean-up steps applied by Clean.
type Options struct {
	NFC            bool
	CollapseSpaces bool
}

// Clean applies the selected steps to s. With no steps selected s is returned
// unchanged.
func Clean(s string, opts Options) string {
	if opts.NFC {
		s = NFC(s)
	}
	if opts.CollapseSpaces {
		s = CollapseSpaces(s)
	}
	return s
}

// NFC returns s in Unicode normalization form C, so composed and decomposed
// spellings of the same character compare equal.
func NFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// CollapseSpaces replaces every run of whitespace with a single space and
// trims both ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

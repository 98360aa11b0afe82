// Package markup wraps the tolerant HTML5 parser used by quizprep.
//
// Explanation fragments are parsed in a <body> context with
// golang.org/x/net/html, which repairs unbalanced or unclosed tags the same
// way a browser would. On top of that single parse the package offers two
// operations: Normalize re-serializes the repaired tree, and Text extracts
// the plain text of the fragment. Markdown conversion, sanitizing and the
// legacy regular-expression tag stripper are provided for the stripper and
// normalizer options.
package markup

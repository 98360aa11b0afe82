// Package stripper implements the strip stage: it removes HTML markup from the
// explanation field of every record in the book index and writes the
// explanation collection.
//
// Two extractors are available. The parser extractor walks the tolerant HTML
// parse tree and keeps its text nodes with entity references spelled as in
// the source; it can also emit Markdown. The pattern extractor reproduces the historical
// regular-expression stripper byte for byte and leaves entities alone.
package stripper

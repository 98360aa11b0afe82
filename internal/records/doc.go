// Package records models the JSON record collections that flow between
// quizprep stages.
//
// Every stage file is a single object holding a "data" array of flat records.
// Records keep their key order and the raw bytes of every value, so a stage
// only rewrites the fields it owns and passes everything else through
// untouched. The package also owns the field-level error taxonomy (missing
// fields, failed integer coercion, malformed markup) and the integer coercion
// rules shared by all stages.
package records

// Package stage defines the contract shared by quizprep's transformation
// steps.
//
// A Handler reads its input files, transforms the records and writes one
// output file. Handlers report what they did through Result, report input
// readiness through Health, and tag failures with the sentinel markers in
// this package so the workflow runner and CLI can classify them. The context
// helpers carry the run id and stage name used by structured logging.
package stage

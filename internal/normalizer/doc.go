// Package normalizer implements the normalize stage: every explanation
// fragment is reparsed with the tolerant HTML parser and replaced by its
// balanced re-serialization.
//
// Repairs are expected and never fatal. A fragment whose canonical form
// differs from its input is counted as repaired and logged at debug level.
package normalizer

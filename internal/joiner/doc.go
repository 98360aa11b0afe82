// Package joiner implements the join stage: every question is paired with the
// explanation whose id equals its book_section_id.
//
// Explanations are indexed once by id, then each question does a single
// lookup, so the output has exactly one record per question in input order.
// Questions without a matching explanation carry a null explanation.
package joiner

// Package main hosts the quizprep CLI entrypoint and command graph.
//
// The Cobra command tree maps each transformation stage to a subcommand,
// chains them with run, and offers configuration scaffolding. It resolves
// configuration once, builds the structured logger, and renders stage results
// as tables or JSON. The transformation logic lives in the internal packages.
package main

// Package preflight provides readiness checks for the filesystem paths that
// quizprep reads and writes.
//
// These checks run in two contexts:
//   - The workflow runner calls RunAll after taking the run lock. If any check
//     fails, the run stops before the first stage touches a file.
//   - The CLI "quizprep status" and "quizprep config validate" commands display
//     the individual results.
package preflight

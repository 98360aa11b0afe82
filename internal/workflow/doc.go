// Package workflow runs quizprep stages in order.
//
// The Runner takes an exclusive advisory lock in the work directory so two
// runs never write the same files, assigns the run a correlation id, and feeds
// each stage a context carrying that id and the stage name. The first failing
// stage stops the run; outputs of stages that already finished stay in place.
package workflow

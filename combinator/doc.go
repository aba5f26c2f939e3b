// Package combinator provides standalone asynchronous composition helpers
// (Parallel, Route, Loop, Repeat) that express common control-flow patterns
// without requiring a Workflow instance.
//
// The helpers are orthogonal to the workflow engine: a step's Execute body
// may call them internally (for example to fan out to several providers at
// once), but the Workflow never special-cases them. None of the combinators
// apply retry or skip policies; any task, branch or iteration failure
// propagates directly to the caller, and recovery is the responsibility of
// the Step wrapper when a combinator is used inside a workflow step.
//
// Ordering guarantees:
//   - Parallel returns results in input order regardless of completion order
//   - Route evaluates branch conditions in slice order and short-circuits
//     on the first match
//   - Loop and Repeat invoke their step with a monotonically increasing
//     iteration index starting at zero
package combinator

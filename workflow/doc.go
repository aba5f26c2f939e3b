// Package workflow implements the sequential execution engine at the heart
// of flowmesh: named steps chained into a pipeline that threads each step's
// output into the next step's input while sharing a per-run ExecutionContext.
//
// The package focuses on three concerns:
//
//  1. Step definition (Step, NewStep) with explicit defaults for guard
//     conditions and failure policy applied at construction time
//  2. Run orchestration (Workflow.Run) with per-step status, timing and
//     attempt bookkeeping (StepResult)
//  3. Shared per-run state (ExecutionContext) with an engine-owned outputs
//     namespace and free-form metadata for step authors
//
// Execution model:
//   - Steps run strictly one at a time in declaration order; there is no
//     cross-step parallelism managed by the Workflow itself
//   - A step's Execute may fan out internally using the combinator package;
//     the ExecutionContext is safe for concurrent metadata access
//   - Failure handling is per step: halt the run, skip past the failure, or
//     retry with a bounded budget
//
// Workflows are built once and may be run many times; every Run call gets a
// fresh ExecutionContext and result list, so a single Workflow value can
// serve concurrent runs.
package workflow

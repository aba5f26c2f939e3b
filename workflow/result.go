package workflow

import "time"

// Status classifies the recorded outcome of a step.
type Status string

const (
	// StatusCompleted marks a step whose Execute succeeded; its output was
	// recorded and became the next step's input.
	StatusCompleted Status = "completed"
	// StatusSkipped marks a step whose guard condition evaluated to false.
	// The step's Execute was never invoked.
	StatusSkipped Status = "skipped"
	// StatusFailed marks a step whose Execute failed terminally. Under the
	// Skip policy the run continues past a failed step; under Stop (or an
	// exhausted Retry budget) the failed step is the last result.
	StatusFailed Status = "failed"
)

// StepResult records the outcome of attempting one step.
type StepResult struct {
	// Name is the step's name, matching its position in the workflow.
	Name string `json:"name"`
	// Status is the recorded outcome.
	Status Status `json:"status"`
	// Output is the step's result value. Present only for completed steps.
	Output any `json:"output,omitempty"`
	// Err is the terminal execution error. Present only for failed steps.
	Err error `json:"error,omitempty"`
	// Duration is the wall-clock time of the attempt that determined the
	// final status (for retries: the successful attempt, or the last
	// failing one). Zero for skipped steps.
	Duration time.Duration `json:"duration"`
	// Attempts counts Execute invocations. Zero for skipped steps, at
	// least one otherwise.
	Attempts int `json:"attempts"`
}

// RunResult is the outcome of one Workflow.Run invocation.
type RunResult struct {
	// Output is the final pipeline value: the last completed step's output
	// threaded through the run, or the initial input if every step was
	// skipped. Nil when the run halted on a failure.
	Output any `json:"output,omitempty"`
	// Results holds one entry per attempted step, in declaration order. On
	// a halted run it is the executed prefix ending at the failing step.
	Results []StepResult `json:"results"`
	// Context is the run's execution context (step outputs + metadata),
	// handed back for inspection or checkpointing by the caller.
	Context *ExecutionContext `json:"-"`
}

// Failed reports whether any recorded step failed, whether or not the run
// halted there.
func (r *RunResult) Failed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			return true
		}
	}
	return false
}

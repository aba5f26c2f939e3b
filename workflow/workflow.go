package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowmesh/flowmesh/logging"
)

// ErrDuplicateStep is returned when a step name is already registered.
var ErrDuplicateStep = errors.New("duplicate step name")

// ErrNilExecute is returned when a step is registered without an execute function.
var ErrNilExecute = errors.New("step execute function is nil")

// Workflow is an ordered collection of Steps executed sequentially, wiring
// each step's input from the previous step's output while giving every step
// access to the shared per-run ExecutionContext.
//
// A Workflow is built once (AddStep during a setup phase) and may then be
// run any number of times; Run invocations are independent and safe to make
// concurrently since all per-run state lives in the RunResult.
type Workflow struct {
	id     string
	name   string
	steps  []Step
	logger logging.Logger
}

// Options configures construction of a Workflow.
type Options struct {
	// Logger receives per-step execution logs. Defaults to NoOpLogger.
	Logger logging.Logger
}

// New creates a named Workflow with a generated unique ID.
func New(name string, optFns ...func(o *Options)) *Workflow {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Workflow{
		id:     uuid.NewString(),
		name:   name,
		logger: opts.Logger,
	}
}

// WithLogger sets the workflow's logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// ID returns the workflow's unique identifier.
func (w *Workflow) ID() string { return w.id }

// Name returns the caller-supplied workflow label.
func (w *Workflow) Name() string { return w.name }

// Steps returns a copy of the registered steps in execution order.
func (w *Workflow) Steps() []Step {
	steps := make([]Step, len(w.steps))
	copy(steps, w.steps)
	return steps
}

// AddStep appends a step to the execution sequence. Step names must be
// unique within the workflow because they key the step's output in the
// ExecutionContext.
func (w *Workflow) AddStep(s Step) error {
	if s.execute == nil {
		return fmt.Errorf("workflow %q: step %q: %w", w.name, s.name, ErrNilExecute)
	}
	for _, existing := range w.steps {
		if existing.name == s.name {
			return fmt.Errorf("workflow %q: step %q: %w", w.name, s.name, ErrDuplicateStep)
		}
	}
	w.steps = append(w.steps, s)
	return nil
}

// Run executes all steps in declaration order starting from initialInput.
//
// The returned RunResult always carries one StepResult per attempted step
// plus the run's ExecutionContext. The error is non-nil in exactly two
// cases: a guard condition itself failed (fatal defect, no StepResult is
// recorded for that step), or the run halted on a step failure under the
// Stop policy or an exhausted Retry budget. A failure absorbed by the Skip
// policy is recorded as a failed StepResult but does not produce an error.
//
// On a halted run RunResult.Output is nil; otherwise it is the value
// threaded through the pipeline.
func (w *Workflow) Run(ctx context.Context, initialInput any) (*RunResult, error) {
	ec := NewExecutionContext()
	result := &RunResult{
		Results: make([]StepResult, 0, len(w.steps)),
		Context: ec,
	}

	w.logger.Info("workflow run started", "workflow", w.name, "workflow_id", w.id, "steps", len(w.steps))

	currentInput := initialInput

	for _, step := range w.steps {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("workflow %q cancelled before step %q: %w", w.name, step.name, err)
		}

		if step.condition != nil {
			ok, err := step.condition(ctx, currentInput, ec)
			if err != nil {
				return result, fmt.Errorf("workflow %q: condition for step %q: %w", w.name, step.name, err)
			}
			if !ok {
				w.logger.Debug("step skipped by condition", "workflow", w.name, "step", step.name)
				result.Results = append(result.Results, StepResult{
					Name:   step.name,
					Status: StatusSkipped,
				})
				continue
			}
		}

		stepResult, execErr := w.runStep(ctx, step, currentInput, ec)
		result.Results = append(result.Results, stepResult)

		if execErr != nil {
			if step.onError == Skip {
				// Failure absorbed: the next step sees the unchanged input.
				w.logger.Warn("step failed, continuing", "workflow", w.name, "step", step.name, "error", execErr)
				continue
			}
			w.logger.Error("workflow halted", "workflow", w.name, "step", step.name, "error", execErr)
			return result, fmt.Errorf("workflow %q halted at step %q: %w", w.name, step.name, execErr)
		}

		ec.setOutput(step.name, stepResult.Output)
		currentInput = stepResult.Output
	}

	result.Output = currentInput

	w.logger.Info("workflow run finished", "workflow", w.name, "workflow_id", w.id, "results", len(result.Results))

	return result, nil
}

// runStep drives the attempt loop for a single step, honoring the Retry
// budget. It returns the recorded StepResult plus the terminal error, if
// any; duration reflects the attempt that determined the final status.
func (w *Workflow) runStep(ctx context.Context, step Step, input any, ec *ExecutionContext) (StepResult, error) {
	maxAttempts := 1
	if step.onError == Retry {
		maxAttempts = step.maxRetries + 1
	}

	var (
		lastErr      error
		lastDuration time.Duration
	)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return StepResult{
				Name:     step.name,
				Status:   StatusFailed,
				Err:      err,
				Duration: lastDuration,
				Attempts: attempt - 1,
			}, err
		}

		start := time.Now()
		output, err := step.execute(ctx, input, ec)
		lastDuration = time.Since(start)

		if err == nil {
			w.logger.Debug("step completed", "workflow", w.name, "step", step.name, "attempts", attempt, "duration", lastDuration)
			return StepResult{
				Name:     step.name,
				Status:   StatusCompleted,
				Output:   output,
				Duration: lastDuration,
				Attempts: attempt,
			}, nil
		}

		lastErr = err
		if attempt < maxAttempts {
			w.logger.Debug("step attempt failed, retrying", "workflow", w.name, "step", step.name, "attempt", attempt, "error", err)
		}
	}

	return StepResult{
		Name:     step.name,
		Status:   StatusFailed,
		Err:      lastErr,
		Duration: lastDuration,
		Attempts: maxAttempts,
	}, lastErr
}

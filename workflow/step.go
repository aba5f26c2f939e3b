package workflow

import "context"

// ExecuteFunc is the unit of work carried by a Step. It receives the output
// of the previous step (or the run's initial input for the first step) and
// the shared per-run ExecutionContext. The returned value becomes the input
// of the next step.
type ExecuteFunc func(ctx context.Context, input any, ec *ExecutionContext) (any, error)

// ConditionFunc guards a Step. When it returns false the step is skipped and
// the current input passes through unchanged. An error from a condition is a
// caller-visible defect and aborts the whole run immediately.
type ConditionFunc func(ctx context.Context, input any, ec *ExecutionContext) (bool, error)

// ErrorMode is the closed set of per-step failure policies.
type ErrorMode int

const (
	// Stop halts the entire run on step failure. This is the default.
	Stop ErrorMode = iota
	// Skip records the failure and continues with the next step, leaving
	// the current input unchanged.
	Skip
	// Retry re-invokes Execute up to MaxRetries additional times before
	// halting the run like Stop.
	Retry
)

// String returns the string representation of the error mode.
func (m ErrorMode) String() string {
	switch m {
	case Stop:
		return "stop"
	case Skip:
		return "skip"
	case Retry:
		return "retry"
	default:
		return "unknown"
	}
}

// Step is a named unit of work within a Workflow. Steps are immutable after
// construction; all optional behavior is fixed by NewStep.
type Step struct {
	name       string
	execute    ExecuteFunc
	condition  ConditionFunc // nil means always run
	onError    ErrorMode
	maxRetries int
}

// StepOptions configures construction of a Step.
type StepOptions struct {
	// Condition guards execution; nil runs the step unconditionally.
	Condition ConditionFunc
	// OnError selects the failure policy. Defaults to Stop.
	OnError ErrorMode
	// MaxRetries bounds re-invocations under the Retry policy. Ignored for
	// Stop and Skip. Negative values are treated as zero.
	MaxRetries int
}

// NewStep creates a Step with defaults resolved up front: no guard
// condition, Stop on error, zero retries.
func NewStep(name string, execute ExecuteFunc, optFns ...func(o *StepOptions)) Step {
	opts := StepOptions{OnError: Stop}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	return Step{
		name:       name,
		execute:    execute,
		condition:  opts.Condition,
		onError:    opts.OnError,
		maxRetries: opts.MaxRetries,
	}
}

// WithCondition sets the guard condition for a step.
func WithCondition(cond ConditionFunc) func(o *StepOptions) {
	return func(o *StepOptions) { o.Condition = cond }
}

// WithOnError sets the failure policy for a step.
func WithOnError(mode ErrorMode) func(o *StepOptions) {
	return func(o *StepOptions) { o.OnError = mode }
}

// WithRetry sets the Retry policy with the given additional attempt budget.
func WithRetry(maxRetries int) func(o *StepOptions) {
	return func(o *StepOptions) {
		o.OnError = Retry
		o.MaxRetries = maxRetries
	}
}

// Name returns the step's unique name within its workflow. The name doubles
// as the ExecutionContext outputs key for the step's result.
func (s Step) Name() string { return s.name }

// OnError returns the step's failure policy.
func (s Step) OnError() ErrorMode { return s.onError }

// MaxRetries returns the retry budget consulted under the Retry policy.
func (s Step) MaxRetries() int { return s.maxRetries }

package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmesh/flowmesh/logging"
)

func addStep(t *testing.T, wf *Workflow, s Step) {
	t.Helper()
	require.NoError(t, wf.AddStep(s))
}

func intInput(t *testing.T, input any) int {
	t.Helper()
	n, ok := input.(int)
	require.True(t, ok, "expected int input, got %T", input)
	return n
}

func TestNew(t *testing.T) {
	wf := New("Test Workflow")

	assert.NotNil(t, wf)
	assert.Equal(t, "Test Workflow", wf.Name())
	assert.NotEmpty(t, wf.ID())
	assert.Empty(t, wf.Steps())
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New("a")
	b := New("a")
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestWorkflow_AddStep_DuplicateName(t *testing.T) {
	wf := New("dup")
	noop := func(ctx context.Context, input any, ec *ExecutionContext) (any, error) { return input, nil }

	require.NoError(t, wf.AddStep(NewStep("first", noop)))

	err := wf.AddStep(NewStep("first", noop))
	assert.ErrorIs(t, err, ErrDuplicateStep)
	assert.Len(t, wf.Steps(), 1)
}

func TestWorkflow_AddStep_NilExecute(t *testing.T) {
	wf := New("nil-exec")
	err := wf.AddStep(NewStep("broken", nil))
	assert.ErrorIs(t, err, ErrNilExecute)
}

func TestWorkflow_Run_Pipeline(t *testing.T) {
	wf := New("math")
	addStep(t, wf, NewStep("add", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return intInput(t, input) + 10, nil
	}))
	addStep(t, wf, NewStep("double", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return intInput(t, input) * 2, nil
	}))

	result, err := wf.Run(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 30, result.Output)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "add", result.Results[0].Name)
	assert.Equal(t, StatusCompleted, result.Results[0].Status)
	assert.Equal(t, 15, result.Results[0].Output)
	assert.Equal(t, "double", result.Results[1].Name)
	assert.Equal(t, StatusCompleted, result.Results[1].Status)
	assert.Equal(t, 30, result.Results[1].Output)
	assert.False(t, result.Failed())
}

func TestWorkflow_Run_OutputsRecordedInContext(t *testing.T) {
	wf := New("outputs")
	addStep(t, wf, NewStep("produce", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return "value", nil
	}))

	result, err := wf.Run(context.Background(), nil)

	require.NoError(t, err)
	out, ok := result.Context.Output("produce")
	assert.True(t, ok)
	assert.Equal(t, "value", out)
}

func TestWorkflow_Run_MetadataPropagation(t *testing.T) {
	wf := New("metadata")
	addStep(t, wf, NewStep("writer", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		ec.Set("k", input)
		return input, nil
	}))
	addStep(t, wf, NewStep("reader", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		v, ok := ec.Get("k")
		if !ok {
			return nil, errors.New("metadata key missing")
		}
		return v, nil
	}))

	result, err := wf.Run(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, 42, result.Output)
}

func TestWorkflow_Run_ConditionSkip(t *testing.T) {
	wf := New("conditional")
	add1 := func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return intInput(t, input) + 1, nil
	}
	never := func(ctx context.Context, input any, ec *ExecutionContext) (bool, error) { return false, nil }

	addStep(t, wf, NewStep("first", add1))
	addStep(t, wf, NewStep("never", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return intInput(t, input) * 100, nil
	}, WithCondition(never)))
	addStep(t, wf, NewStep("last", add1))

	result, err := wf.Run(context.Background(), 0)

	require.NoError(t, err)
	// Skipped step leaves the current input unchanged for its successor.
	assert.Equal(t, 2, result.Output)
	require.Len(t, result.Results, 3)
	assert.Equal(t, StatusSkipped, result.Results[1].Status)
	assert.Zero(t, result.Results[1].Attempts)
	assert.Zero(t, result.Results[1].Duration)
	assert.Nil(t, result.Results[1].Output)

	_, ok := result.Context.Output("never")
	assert.False(t, ok)
}

func TestWorkflow_Run_StopHaltsRun(t *testing.T) {
	wf := New("halting")
	boom := errors.New("boom")

	addStep(t, wf, NewStep("ok", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return 1, nil
	}))
	addStep(t, wf, NewStep("fails", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return nil, boom
	}))
	addStep(t, wf, NewStep("unreached", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		t.Fatal("step after halt must not execute")
		return nil, nil
	}))

	result, err := wf.Run(context.Background(), 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, result.Output)
	require.Len(t, result.Results, 2)
	assert.Equal(t, StatusFailed, result.Results[1].Status)
	assert.Equal(t, 1, result.Results[1].Attempts)
	assert.ErrorIs(t, result.Results[1].Err, boom)
	assert.True(t, result.Failed())
}

func TestWorkflow_Run_SkipPolicyContinues(t *testing.T) {
	wf := New("degraded")
	boom := errors.New("boom")

	addStep(t, wf, NewStep("fails", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return nil, boom
	}, WithOnError(Skip)))
	addStep(t, wf, NewStep("after", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return intInput(t, input) + 1, nil
	}))

	result, err := wf.Run(context.Background(), 10)

	require.NoError(t, err)
	// The failed step did not alter the pipeline value.
	assert.Equal(t, 11, result.Output)
	require.Len(t, result.Results, 2)
	assert.Equal(t, StatusFailed, result.Results[0].Status)
	assert.ErrorIs(t, result.Results[0].Err, boom)
	assert.Equal(t, StatusCompleted, result.Results[1].Status)
	assert.True(t, result.Failed())
}

func TestWorkflow_Run_RetrySucceedsOnThirdAttempt(t *testing.T) {
	wf := New("retrying")
	calls := 0

	addStep(t, wf, NewStep("flaky", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		calls++
		if calls < 3 {
			return nil, fmt.Errorf("transient failure %d", calls)
		}
		return "recovered", nil
	}, WithRetry(2)))

	result, err := wf.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "recovered", result.Output)
	require.Len(t, result.Results, 1)
	assert.Equal(t, StatusCompleted, result.Results[0].Status)
	assert.Equal(t, 3, result.Results[0].Attempts)
}

func TestWorkflow_Run_RetryExhaustedHalts(t *testing.T) {
	wf := New("exhausted")
	boom := errors.New("still broken")
	calls := 0

	addStep(t, wf, NewStep("flaky", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		calls++
		return nil, boom
	}, WithRetry(2)))
	addStep(t, wf, NewStep("unreached", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		t.Fatal("step after exhausted retries must not execute")
		return nil, nil
	}))

	result, err := wf.Run(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
	assert.Nil(t, result.Output)
	require.Len(t, result.Results, 1)
	assert.Equal(t, StatusFailed, result.Results[0].Status)
	assert.Equal(t, 3, result.Results[0].Attempts)
}

func TestWorkflow_Run_StepDuration(t *testing.T) {
	wf := New("timed")
	addStep(t, wf, NewStep("slow", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		time.Sleep(50 * time.Millisecond)
		return input, nil
	}))

	result, err := wf.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Results[0].Duration, 50*time.Millisecond)
}

func TestWorkflow_Run_ConditionErrorIsFatal(t *testing.T) {
	wf := New("defective")
	condErr := errors.New("condition defect")

	addStep(t, wf, NewStep("guarded", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return input, nil
	}, WithCondition(func(ctx context.Context, input any, ec *ExecutionContext) (bool, error) {
		return false, condErr
	})))

	result, err := wf.Run(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, condErr)
	// A defective condition records no StepResult for its step.
	assert.Empty(t, result.Results)
}

func TestWorkflow_Run_IndependentRuns(t *testing.T) {
	wf := New("reusable")
	addStep(t, wf, NewStep("writer", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		ec.Set("seen", input)
		return input, nil
	}))

	first, err := wf.Run(context.Background(), "one")
	require.NoError(t, err)
	second, err := wf.Run(context.Background(), "two")
	require.NoError(t, err)

	v1, _ := first.Context.Get("seen")
	v2, _ := second.Context.Get("seen")
	assert.Equal(t, "one", v1)
	assert.Equal(t, "two", v2)
	assert.NotSame(t, first.Context, second.Context)
}

func TestWorkflow_Run_EmptyWorkflow(t *testing.T) {
	wf := New("empty")

	result, err := wf.Run(context.Background(), "passthrough")

	require.NoError(t, err)
	assert.Equal(t, "passthrough", result.Output)
	assert.Empty(t, result.Results)
}

func TestWorkflow_Run_CancelledContext(t *testing.T) {
	wf := New("cancelled")
	addStep(t, wf, NewStep("any", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return input, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := wf.Run(ctx, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Results)
}

func TestWorkflow_Run_WithLogger(t *testing.T) {
	wf := New("logged", WithLogger(logging.NoOpLogger{}))
	addStep(t, wf, NewStep("noop", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return input, nil
	}))

	_, err := wf.Run(context.Background(), nil)
	assert.NoError(t, err)
}

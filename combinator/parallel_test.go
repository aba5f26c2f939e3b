package combinator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallel_ResultsInInputOrder(t *testing.T) {
	// The slowest task comes first so completion order inverts input order.
	tasks := []Task[int]{
		func(ctx context.Context) (int, error) { time.Sleep(30 * time.Millisecond); return 1, nil },
		func(ctx context.Context) (int, error) { time.Sleep(10 * time.Millisecond); return 2, nil },
		func(ctx context.Context) (int, error) { return 3, nil },
	}

	results, err := Parallel(context.Background(), tasks...)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, results)
}

func TestParallel_RunsConcurrently(t *testing.T) {
	task := func(ctx context.Context) (int, error) {
		time.Sleep(50 * time.Millisecond)
		return 0, nil
	}

	start := time.Now()
	_, err := Parallel(context.Background(), task, task, task)
	elapsed := time.Since(start)

	require.NoError(t, err)
	// Bounded by the slowest task, not the sum of all three.
	assert.Less(t, elapsed, 140*time.Millisecond)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
}

func TestParallel_FailurePropagates(t *testing.T) {
	boom := errors.New("boom")
	var completed atomic.Int32

	results, err := Parallel(context.Background(),
		func(ctx context.Context) (int, error) { completed.Add(1); return 1, nil },
		func(ctx context.Context) (int, error) { return 0, boom },
		func(ctx context.Context) (int, error) { completed.Add(1); return 3, nil },
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, results)
	// Sibling tasks are always awaited, even when one fails.
	assert.Equal(t, int32(2), completed.Load())
}

func TestParallel_NoTasks(t *testing.T) {
	results, err := Parallel[int](context.Background())

	require.NoError(t, err)
	assert.Empty(t, results)
}

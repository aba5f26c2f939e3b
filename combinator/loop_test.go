package combinator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_InclusiveOfTerminatingResult(t *testing.T) {
	results, err := Loop(context.Background(),
		func(ctx context.Context, i int) (int, error) { return i, nil },
		func(r, i int) bool { return i < 3 },
		0,
	)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, results)
}

func TestLoop_MaxIterationsCutsOff(t *testing.T) {
	results, err := Loop(context.Background(),
		func(ctx context.Context, i int) (int, error) { return i, nil },
		func(r, i int) bool { return true },
		2,
	)

	require.NoError(t, err)
	// Exactly maxIterations results, regardless of the condition.
	assert.Equal(t, []int{0, 1}, results)
}

func TestLoop_IterationErrorPropagates(t *testing.T) {
	boom := errors.New("boom")

	results, err := Loop(context.Background(),
		func(ctx context.Context, i int) (int, error) {
			if i == 2 {
				return 0, boom
			}
			return i, nil
		},
		func(r, i int) bool { return true },
		10,
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{0, 1}, results)
}

func TestLoop_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	results, err := Loop(ctx,
		func(ctx context.Context, i int) (int, error) {
			if i == 1 {
				cancel()
			}
			return i, nil
		},
		func(r, i int) bool { return true },
		100,
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0, 1}, results)
}

func TestRepeat_FixedCount(t *testing.T) {
	results, err := Repeat(context.Background(),
		func(ctx context.Context, i int) (int, error) { return i * 2, nil },
		4,
	)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4, 6}, results)
}

func TestRepeat_ZeroTimes(t *testing.T) {
	results, err := Repeat(context.Background(),
		func(ctx context.Context, i int) (int, error) { return i, nil },
		0,
	)

	require.NoError(t, err)
	assert.Empty(t, results)
}

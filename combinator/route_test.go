package combinator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constTask(v string) Task[string] {
	return func(ctx context.Context) (string, error) { return v, nil }
}

func TestRoute_FirstMatchWins(t *testing.T) {
	laterEvaluated := false

	out, ok, err := Route(context.Background(), []Branch[string]{
		{Condition: func() bool { return false }, Execute: constTask("a")},
		{Condition: func() bool { return true }, Execute: constTask("b")},
		{
			Condition: func() bool { laterEvaluated = true; return true },
			Execute: func(ctx context.Context) (string, error) {
				t.Fatal("branch after first match must not execute")
				return "", nil
			},
		},
	}, nil)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", out)
	assert.False(t, laterEvaluated, "conditions after the first match must not be evaluated")
}

func TestRoute_FallbackWhenNoMatch(t *testing.T) {
	out, ok, err := Route(context.Background(), []Branch[string]{
		{Condition: func() bool { return false }, Execute: constTask("a")},
	}, constTask("default"))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "default", out)
}

func TestRoute_NoMatchNoFallback(t *testing.T) {
	out, ok, err := Route(context.Background(), []Branch[string]{
		{Condition: func() bool { return false }, Execute: constTask("a")},
	}, nil)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestRoute_BranchErrorPropagates(t *testing.T) {
	boom := errors.New("boom")

	_, ok, err := Route(context.Background(), []Branch[string]{
		{Condition: func() bool { return true }, Execute: func(ctx context.Context) (string, error) {
			return "", boom
		}},
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestRoute_EmptyBranches(t *testing.T) {
	out, ok, err := Route[int](context.Background(), nil, nil)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, out)
}

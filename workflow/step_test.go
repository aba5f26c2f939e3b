package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStep_Defaults(t *testing.T) {
	s := NewStep("plain", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return input, nil
	})

	assert.Equal(t, "plain", s.Name())
	assert.Equal(t, Stop, s.OnError())
	assert.Zero(t, s.MaxRetries())
	assert.Nil(t, s.condition)
}

func TestNewStep_Options(t *testing.T) {
	cond := func(ctx context.Context, input any, ec *ExecutionContext) (bool, error) { return true, nil }
	s := NewStep("tuned", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return input, nil
	}, WithCondition(cond), WithRetry(4))

	assert.Equal(t, Retry, s.OnError())
	assert.Equal(t, 4, s.MaxRetries())
	assert.NotNil(t, s.condition)
}

func TestNewStep_NegativeRetriesClamped(t *testing.T) {
	s := NewStep("clamped", func(ctx context.Context, input any, ec *ExecutionContext) (any, error) {
		return input, nil
	}, WithRetry(-5))

	assert.Zero(t, s.MaxRetries())
}

func TestErrorMode_String(t *testing.T) {
	assert.Equal(t, "stop", Stop.String())
	assert.Equal(t, "skip", Skip.String())
	assert.Equal(t, "retry", Retry.String())
	assert.Equal(t, "unknown", ErrorMode(42).String())
}

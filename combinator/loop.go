package combinator

import (
	"context"
	"fmt"
)

// IterFunc is one loop iteration. The iteration index starts at zero and
// increases monotonically.
type IterFunc[T any] func(ctx context.Context, iteration int) (T, error)

// Loop repeatedly calls step starting at iteration 0, collecting every
// result, and continues while continueCond(result, iteration) is true.
//
// The returned slice always includes the final, condition-failing result
// (inclusive semantics) unless maxIterations cuts the loop off first, in
// which case exactly maxIterations results are returned regardless of the
// condition. A maxIterations value <= 0 means unbounded.
//
// Loop checks for context cancellation before each iteration and returns
// the context error together with the results collected so far.
func Loop[T any](ctx context.Context, step IterFunc[T], continueCond func(result T, iteration int) bool, maxIterations int) ([]T, error) {
	var results []T

	for i := 0; maxIterations <= 0 || i < maxIterations; i++ {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		out, err := step(ctx, i)
		if err != nil {
			return results, fmt.Errorf("loop iteration %d failed: %w", i, err)
		}
		results = append(results, out)

		if !continueCond(out, i) {
			break
		}
	}

	return results, nil
}

// Repeat calls step for iterations 0..times-1 unconditionally, in order,
// collecting all results. It is equivalent to Loop with an always-true
// condition and maxIterations = times.
func Repeat[T any](ctx context.Context, step IterFunc[T], times int) ([]T, error) {
	if times <= 0 {
		return []T{}, nil
	}
	return Loop(ctx, step, func(T, int) bool { return true }, times)
}

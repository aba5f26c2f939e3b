package combinator

import (
	"context"
	"fmt"
	"sync"
)

// Task is a unit of asynchronous work executed by a combinator.
type Task[T any] func(ctx context.Context) (T, error)

// Parallel invokes every task immediately in its own goroutine, waits for
// all of them to finish and returns their results in the same order as the
// input slice regardless of completion order.
//
// All tasks are always awaited, even when one fails early; if any task
// failed, the first error encountered is returned and no partial result
// slice is exposed. Tasks share the caller's context, so a task that honors
// cancellation can be stopped by the caller's deadline.
func Parallel[T any](ctx context.Context, tasks ...Task[T]) ([]T, error) {
	if len(tasks) == 0 {
		return []T{}, nil
	}

	var wg sync.WaitGroup
	results := make([]T, len(tasks))
	errCh := make(chan error, len(tasks))

	for i, task := range tasks {
		wg.Add(1)
		go func(idx int, t Task[T]) {
			defer wg.Done()

			out, err := t(ctx)
			if err != nil {
				errCh <- fmt.Errorf("parallel task %d failed: %w", idx, err)
				return
			}
			results[idx] = out
		}(i, task)
	}

	// Wait for all tasks to complete before surfacing any error.
	wg.Wait()
	close(errCh)

	if len(errCh) > 0 {
		return nil, <-errCh
	}

	return results, nil
}

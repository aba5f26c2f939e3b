package combinator

import "context"

// Branch pairs a guard condition with the work to execute when it matches.
type Branch[T any] struct {
	// Condition decides whether this branch is taken. Evaluated lazily in
	// slice order; conditions after the first match are never called.
	Condition func() bool
	// Execute produces the branch result. Only invoked when Condition
	// returned true and no earlier branch matched.
	Execute Task[T]
}

// Route evaluates branch conditions in slice order and executes the first
// branch whose condition is true, returning its result with ok=true. Later
// branches are neither evaluated nor executed.
//
// When no branch matches, the fallback is executed if non-nil; otherwise
// Route returns the zero value with ok=false.
func Route[T any](ctx context.Context, branches []Branch[T], fallback Task[T]) (T, bool, error) {
	var zero T

	for _, branch := range branches {
		if !branch.Condition() {
			continue
		}
		out, err := branch.Execute(ctx)
		if err != nil {
			return zero, false, err
		}
		return out, true, nil
	}

	if fallback != nil {
		out, err := fallback(ctx)
		if err != nil {
			return zero, false, err
		}
		return out, true, nil
	}

	return zero, false, nil
}

package workflow

import "sync"

// ExecutionContext is the mutable shared state for one workflow run. It
// tracks the outputs of completed steps (keyed by step name, written only by
// the engine) and free-form metadata that any step may read or write. It is
// safe for concurrent access so steps that fan out internally (for example
// via combinator.Parallel) can write metadata from multiple goroutines.
//
// Contract:
//   - The outputs namespace is engine-owned; step authors cannot write to it
//     directly, which keeps step outputs from colliding with metadata keys
//   - Metadata set by a step is visible to all subsequent steps in the run
//   - An ExecutionContext is never shared across concurrent Run invocations;
//     each Run creates a fresh one and hands it back in the RunResult
type ExecutionContext struct {
	mu       sync.RWMutex
	outputs  map[string]any
	metadata map[string]any
}

// NewExecutionContext creates an empty execution context.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		outputs:  map[string]any{},
		metadata: map[string]any{},
	}
}

// Set stores a metadata key/value pair visible to subsequent steps.
func (ec *ExecutionContext) Set(key string, value any) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.metadata[key] = value
}

// Get returns the metadata value and existence flag for a key.
func (ec *ExecutionContext) Get(key string) (any, bool) {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	v, ok := ec.metadata[key]
	return v, ok
}

// Metadata returns a copy of all metadata to prevent callers from mutating
// internal state.
func (ec *ExecutionContext) Metadata() map[string]any {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	out := make(map[string]any, len(ec.metadata))
	for k, v := range ec.metadata {
		out[k] = v
	}
	return out
}

// Output returns the recorded output of a completed step by name.
func (ec *ExecutionContext) Output(stepName string) (any, bool) {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	v, ok := ec.outputs[stepName]
	return v, ok
}

// Outputs returns a copy of all recorded step outputs.
func (ec *ExecutionContext) Outputs() map[string]any {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	out := make(map[string]any, len(ec.outputs))
	for k, v := range ec.outputs {
		out[k] = v
	}
	return out
}

// setOutput records a completed step's output. Engine use only; step names
// are unique within a workflow so keys cannot collide.
func (ec *ExecutionContext) setOutput(stepName string, value any) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.outputs[stepName] = value
}

// Package flowmesh provides a high-level façade over the workflow execution
// engine, enabling rapid construction of multi-step agent pipelines. Most
// applications interact with this package by:
//  1. Creating a FlowMesh via New() (optionally supplying a structured logger)
//  2. Registering one or more workflows built from steps (function, model,
//     specfile-defined)
//  3. Running them by name with Run()
//
// The façade delegates orchestration to workflow.Workflow while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a
// structured logger via WithLogger.
package flowmesh

import (
	"context"
	"fmt"
	"sync"

	"github.com/flowmesh/flowmesh/logging"
	"github.com/flowmesh/flowmesh/workflow"
)

// Options configures the FlowMesh instance.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// WithLogger supplies the logger handed to every workflow created through
// this façade.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// FlowMesh is the high-level façade aggregating a named workflow registry.
type FlowMesh struct {
	opts      Options
	mu        sync.RWMutex
	workflows map[string]*workflow.Workflow
}

// New creates a new FlowMesh instance with optional overrides.
func New(optFns ...func(o *Options)) *FlowMesh {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &FlowMesh{
		opts:      opts,
		workflows: map[string]*workflow.Workflow{},
	}
}

// NewWorkflow creates a workflow wired to the façade's logger. The workflow
// still has to be registered once its steps are in place.
func (m *FlowMesh) NewWorkflow(name string) *workflow.Workflow {
	return workflow.New(name, workflow.WithLogger(m.opts.Logger))
}

// RegisterWorkflow adds a workflow to the registry keyed by its name.
func (m *FlowMesh) RegisterWorkflow(wf *workflow.Workflow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.workflows[wf.Name()]; exists {
		return fmt.Errorf("workflow %q is already registered", wf.Name())
	}
	m.workflows[wf.Name()] = wf
	return nil
}

// Workflow looks up a registered workflow by name.
func (m *FlowMesh) Workflow(name string) (*workflow.Workflow, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wf, ok := m.workflows[name]
	return wf, ok
}

// Run executes a registered workflow by name with the given initial input.
func (m *FlowMesh) Run(ctx context.Context, name string, input any) (*workflow.RunResult, error) {
	wf, ok := m.Workflow(name)
	if !ok {
		return nil, fmt.Errorf("workflow %q is not registered", name)
	}
	return wf.Run(ctx, input)
}

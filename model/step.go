package model

import (
	"context"
	"fmt"

	"github.com/flowmesh/flowmesh/internal/util"
	"github.com/flowmesh/flowmesh/workflow"
)

// Step wraps a model call as a workflow Step. The prompt is a Go text
// template rendered against the current pipeline value and the run's
// execution context before each call:
//
//	{{.input}}    the step's input (previous step output)
//	{{.meta}}     the context metadata map
//	{{.outputs}}  outputs of previously completed steps, by name
//
// The step's output is the generated text. Failure policy (retry on
// transient provider errors, skip, stop) is configured through the usual
// step options.
func Step(name string, m Model, prompt string, optFns ...func(o *workflow.StepOptions)) workflow.Step {
	execute := func(ctx context.Context, input any, ec *workflow.ExecutionContext) (any, error) {
		rendered, err := util.RenderTemplate(prompt, map[string]any{
			"input":   input,
			"meta":    ec.Metadata(),
			"outputs": ec.Outputs(),
		})
		if err != nil {
			return nil, fmt.Errorf("rendering prompt for step %q: %w", name, err)
		}

		resp, err := m.Generate(ctx, Request{Prompt: rendered})
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", m.Info().Name, err)
		}

		return resp.Text, nil
	}

	return workflow.NewStep(name, execute, optFns...)
}

package flowmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmesh/flowmesh/workflow"
)

func TestFlowMesh_RegisterAndRun(t *testing.T) {
	m := New()

	wf := m.NewWorkflow("double")
	require.NoError(t, wf.AddStep(workflow.NewStep("double", func(ctx context.Context, input any, ec *workflow.ExecutionContext) (any, error) {
		return input.(int) * 2, nil
	})))
	require.NoError(t, m.RegisterWorkflow(wf))

	result, err := m.Run(context.Background(), "double", 21)

	require.NoError(t, err)
	assert.Equal(t, 42, result.Output)
}

func TestFlowMesh_DuplicateRegistration(t *testing.T) {
	m := New()

	require.NoError(t, m.RegisterWorkflow(m.NewWorkflow("dup")))
	assert.Error(t, m.RegisterWorkflow(m.NewWorkflow("dup")))
}

func TestFlowMesh_UnknownWorkflow(t *testing.T) {
	m := New()

	_, err := m.Run(context.Background(), "missing", nil)
	assert.Error(t, err)

	_, ok := m.Workflow("missing")
	assert.False(t, ok)
}

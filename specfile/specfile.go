// Package specfile parses YAML workflow definitions for the flowmesh CLI
// and renders run reports. A specfile names a workflow and lists its steps:
//
//	name: content-pipeline
//	steps:
//	  - name: classify
//	    action: model
//	    provider: anthropic
//	    prompt: "Classify the following text: {{.input}}"
//	    on_error: retry
//	    max_retries: 2
//	  - name: summarize
//	    action: template
//	    prompt: "classification={{.outputs.classify}}"
//	    when:
//	      path: "kind"
//	      equals: "article"
//
// Step conditions (`when`) are gjson path expressions evaluated against the
// JSON form of the step's current input, so loosely-typed pipeline values
// can be inspected without custom decoding. The package is a caller of the
// workflow engine; parsing and rendering never leak into the core.
package specfile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/flowmesh/flowmesh/internal/util"
	"github.com/flowmesh/flowmesh/model"
	"github.com/flowmesh/flowmesh/workflow"
)

// Known step actions.
const (
	// ActionTemplate renders the prompt template against the current input
	// and context; the rendered string becomes the step output.
	ActionTemplate = "template"
	// ActionModel renders the prompt template and sends it to the named
	// provider; the generated text becomes the step output.
	ActionModel = "model"
	// ActionEcho passes the input through unchanged. Useful as a
	// placeholder while sketching a pipeline.
	ActionEcho = "echo"
)

// File is the root of a parsed workflow definition.
type File struct {
	Name  string     `yaml:"name"`
	Steps []StepSpec `yaml:"steps"`
}

// StepSpec is one step entry in a workflow definition.
type StepSpec struct {
	Name       string    `yaml:"name"`
	Action     string    `yaml:"action"`
	Prompt     string    `yaml:"prompt,omitempty"`
	Provider   string    `yaml:"provider,omitempty"`
	OnError    string    `yaml:"on_error,omitempty"` // stop | skip | retry
	MaxRetries int       `yaml:"max_retries,omitempty"`
	When       *WhenSpec `yaml:"when,omitempty"`
}

// WhenSpec guards a step with a gjson path lookup on the JSON form of the
// step's input. With Equals set the step runs only when the value at Path
// stringifies to Equals; otherwise mere existence of the path suffices.
type WhenSpec struct {
	Path   string `yaml:"path"`
	Equals string `yaml:"equals,omitempty"`
}

// Parse decodes and validates a YAML workflow definition.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing workflow definition: %w", err)
	}

	if f.Name == "" {
		return nil, fmt.Errorf("workflow definition is missing a name")
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("workflow %q defines no steps", f.Name)
	}

	for i, s := range f.Steps {
		if s.Name == "" {
			return nil, fmt.Errorf("workflow %q: step %d is missing a name", f.Name, i)
		}
		switch s.Action {
		case ActionTemplate, ActionModel:
			if s.Prompt == "" {
				return nil, fmt.Errorf("workflow %q: step %q needs a prompt", f.Name, s.Name)
			}
		case ActionEcho, "":
		default:
			return nil, fmt.Errorf("workflow %q: step %q has unknown action %q", f.Name, s.Name, s.Action)
		}
		switch s.OnError {
		case "", "stop", "skip", "retry":
		default:
			return nil, fmt.Errorf("workflow %q: step %q has unknown on_error %q", f.Name, s.Name, s.OnError)
		}
		if s.When != nil && s.When.Path == "" {
			return nil, fmt.Errorf("workflow %q: step %q has a when clause without a path", f.Name, s.Name)
		}
	}

	return &f, nil
}

// Build assembles an executable Workflow from the definition. Models are
// resolved by provider name from the supplied registry; only definitions
// using the model action need one.
func (f *File) Build(models map[string]model.Model, optFns ...func(o *workflow.Options)) (*workflow.Workflow, error) {
	wf := workflow.New(f.Name, optFns...)

	for _, s := range f.Steps {
		step, err := f.buildStep(s, models)
		if err != nil {
			return nil, err
		}
		if err := wf.AddStep(step); err != nil {
			return nil, err
		}
	}

	return wf, nil
}

func (f *File) buildStep(s StepSpec, models map[string]model.Model) (workflow.Step, error) {
	var optFns []func(o *workflow.StepOptions)

	switch s.OnError {
	case "skip":
		optFns = append(optFns, workflow.WithOnError(workflow.Skip))
	case "retry":
		optFns = append(optFns, workflow.WithRetry(s.MaxRetries))
	}

	if s.When != nil {
		optFns = append(optFns, workflow.WithCondition(whenCondition(*s.When)))
	}

	switch s.Action {
	case ActionModel:
		m, ok := models[s.Provider]
		if !ok {
			return workflow.Step{}, fmt.Errorf("workflow %q: step %q references unknown provider %q", f.Name, s.Name, s.Provider)
		}
		return model.Step(s.Name, m, s.Prompt, optFns...), nil

	case ActionTemplate:
		prompt := s.Prompt
		return workflow.NewStep(s.Name, func(ctx context.Context, input any, ec *workflow.ExecutionContext) (any, error) {
			return util.RenderTemplate(prompt, map[string]any{
				"input":   input,
				"meta":    ec.Metadata(),
				"outputs": ec.Outputs(),
			})
		}, optFns...), nil

	default: // echo
		return workflow.NewStep(s.Name, func(ctx context.Context, input any, ec *workflow.ExecutionContext) (any, error) {
			return input, nil
		}, optFns...), nil
	}
}

// whenCondition adapts a WhenSpec into a workflow condition. The input is
// serialized to JSON and the path evaluated with gjson; a non-serializable
// input is a definition defect surfaced as a condition error.
func whenCondition(w WhenSpec) workflow.ConditionFunc {
	return func(ctx context.Context, input any, ec *workflow.ExecutionContext) (bool, error) {
		data, err := json.Marshal(input)
		if err != nil {
			return false, fmt.Errorf("when %q: input is not JSON-serializable: %w", w.Path, err)
		}
		res := gjson.GetBytes(data, w.Path)
		if w.Equals != "" {
			return res.String() == w.Equals, nil
		}
		return res.Exists(), nil
	}
}

// Report is the JSON shape of a run summary produced by the CLI.
type Report struct {
	Name    string       `json:"name"`
	ID      string       `json:"id"`
	Output  any          `json:"output,omitempty"`
	Halted  bool         `json:"halted"`
	Results []StepReport `json:"results"`
}

// StepReport is one step entry in a Report.
type StepReport struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Output     any    `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Attempts   int    `json:"attempts"`
}

// NewReport flattens a run result into a serializable report. halted should
// reflect whether Run returned an error.
func NewReport(wf *workflow.Workflow, res *workflow.RunResult, halted bool) Report {
	report := Report{
		Name:    wf.Name(),
		ID:      wf.ID(),
		Output:  res.Output,
		Halted:  halted,
		Results: make([]StepReport, 0, len(res.Results)),
	}
	for _, r := range res.Results {
		sr := StepReport{
			Name:       r.Name,
			Status:     string(r.Status),
			Output:     r.Output,
			DurationMS: r.Duration.Milliseconds(),
			Attempts:   r.Attempts,
		}
		if r.Err != nil {
			sr.Error = r.Err.Error()
		}
		report.Results = append(report.Results, sr)
	}
	return report
}

// RenderJSON serializes a report with indentation for terminal output.
func RenderJSON(r Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// RenderSummary formats a report as a short human-readable table.
func RenderSummary(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "workflow %s (%s)\n", r.Name, r.ID)
	for _, s := range r.Results {
		fmt.Fprintf(&b, "  %-20s %-10s attempts=%d duration=%dms", s.Name, s.Status, s.Attempts, s.DurationMS)
		if s.Error != "" {
			fmt.Fprintf(&b, " error=%s", s.Error)
		}
		b.WriteString("\n")
	}
	if r.Halted {
		b.WriteString("  run halted\n")
	} else {
		fmt.Fprintf(&b, "  output: %v\n", r.Output)
	}
	return b.String()
}

// Command flowmesh runs a YAML-defined workflow from the command line and
// reports the per-step results as JSON or a human-readable summary.
//
// Usage:
//
//	flowmesh -file pipeline.yaml -input '{"kind":"article","text":"..."}' [-json]
//
// Providers referenced by model steps are configured through FLOWMESH_*
// environment variables or an optional config file (-config).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"

	anthropicmodel "github.com/flowmesh/flowmesh/model/anthropic"
	openaimodel "github.com/flowmesh/flowmesh/model/openai"

	"github.com/flowmesh/flowmesh/logging"
	"github.com/flowmesh/flowmesh/model"
	"github.com/flowmesh/flowmesh/specfile"
	"github.com/flowmesh/flowmesh/workflow"
)

func main() {
	var (
		filePath   = flag.String("file", "", "path to the workflow definition (YAML)")
		inputJSON  = flag.String("input", "", "initial input as JSON (raw string if not valid JSON)")
		configPath = flag.String("config", "", "optional config file")
		asJSON     = flag.Bool("json", false, "emit the run report as JSON")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "flowmesh: -file is required")
		os.Exit(2)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowmesh: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewSlogLogger(cfg.LogLevel(), cfg.Log.Format, false)

	data, err := os.ReadFile(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowmesh: %v\n", err)
		os.Exit(1)
	}

	def, err := specfile.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowmesh: %v\n", err)
		os.Exit(1)
	}

	wf, err := def.Build(buildModels(cfg), workflow.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowmesh: %v\n", err)
		os.Exit(1)
	}

	result, runErr := wf.Run(context.Background(), parseInput(*inputJSON))
	if result == nil {
		fmt.Fprintf(os.Stderr, "flowmesh: %v\n", runErr)
		os.Exit(1)
	}

	report := specfile.NewReport(wf, result, runErr != nil)

	if *asJSON {
		out, err := specfile.RenderJSON(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "flowmesh: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	} else {
		fmt.Print(specfile.RenderSummary(report))
	}

	if runErr != nil {
		os.Exit(1)
	}
}

// parseInput treats the flag value as JSON when possible, falling back to
// the raw string so quick experiments don't require quoting gymnastics.
func parseInput(raw string) any {
	if raw == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

// buildModels constructs the provider registry consumed by model steps.
// Providers without configuration still get default adapters; the SDKs read
// their own env vars, and an unused provider costs nothing until called.
func buildModels(cfg *Config) map[string]model.Model {
	models := map[string]model.Model{}

	models["anthropic"] = anthropicmodel.NewModel(func(o *anthropicmodel.Options) {
		if cfg.Providers.Anthropic.APIKey != "" {
			o.APIKey = cfg.Providers.Anthropic.APIKey
		}
		if cfg.Providers.Anthropic.Model != "" {
			o.Model = anthropic.Model(cfg.Providers.Anthropic.Model)
		}
	})

	models["openai"] = openaimodel.NewModel(func(o *openaimodel.Options) {
		if cfg.Providers.OpenAI.Model != "" {
			o.Model = cfg.Providers.OpenAI.Model
		}
	})

	models["mock"] = model.NewMockModel("mock", "mock")

	return models
}

// Package model defines the provider-agnostic abstractions and concrete
// helpers for invoking language models from workflow steps in flowmesh.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Treat providers as opaque asynchronous functions: the workflow engine
//     has no awareness of provider-specific error types; failure policy is
//     applied by the Step wrapper
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so the engine and CLI remain decoupled from vendor SDKs. The Step
// helper wraps a model call plus prompt templating as a workflow Step.
package model

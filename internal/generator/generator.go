// Package generator is the engine's window on the external
// text-generation service. The engine does not know what a "prompt"
// is; callers hand it an opaque request and get opaque text back.
package generator

import "context"

// Request is one text-generation request: a fixed system instruction
// plus the caller-built context (astrological and behavioral data).
type Request struct {
	System  string
	Context string
}

// Generator produces text from a request. Calls may fail or time out;
// both surface as a plain error the caching layer maps to its own
// generation-failed outcome.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

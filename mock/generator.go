// Package mock provides function-field test doubles for promptsmith
// interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/promptsmith"
)

var _ promptsmith.Generator = (*Generator)(nil)

// Generator is a test double for promptsmith.Generator.
// Set GenerateFn before calling Generate.
type Generator struct {
	GenerateFn func(ctx context.Context, req promptsmith.GenerationRequest, credential string) (string, error)
}

// Generate delegates to GenerateFn.
func (g *Generator) Generate(ctx context.Context, req promptsmith.GenerationRequest, credential string) (string, error) {
	return g.GenerateFn(ctx, req, credential)
}

// Package promptsmith turns a professional role and a task description into
// a ready-to-paste AI prompt plus a recommended free AI tool.
//
// The root package holds the domain types and the pure parts of the
// pipeline: request building, reply parsing, result presentation, the
// generate gate and the error taxonomy. Subpackages adapt these types to a
// specific dependency (gemini, bubbletea, server, yaml, zap, goldmark).
package promptsmith

import "context"

// Generator is a strategy interface for the upstream text-generation call.
// Implementations perform exactly one request and never retry.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest, credential string) (string, error)
}

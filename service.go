package promptsmith

import (
	"context"
	"strings"
)

// Service runs the generate pipeline: validate, build, send, parse,
// present. It holds no per-session state; the caller passes the session's
// Keyring on every call.
type Service struct {
	gen Generator
}

// NewService creates a Service that sends requests through gen.
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// Generate runs one generate action. Local validation failures are
// returned before gen is called. Failures are terminal; nothing is retried.
func (s *Service) Generate(ctx context.Context, keys *Keyring, role, task string) (Result, error) {
	role, task = strings.TrimSpace(role), strings.TrimSpace(task)
	if role == "" || task == "" {
		return Result{}, ErrMissingInput
	}
	if keys == nil {
		return Result{}, ErrNoCredential
	}
	key, ok := keys.Get()
	if !ok {
		return Result{}, ErrNoCredential
	}

	raw, err := s.gen.Generate(ctx, BuildRequest(role, task), key)
	if err != nil {
		return Result{}, err
	}
	return Present(Parse(raw))
}

package promptsmith

import "fmt"

// Generation parameters sent with every request.
const (
	MaxOutputTokens = 1024
	Temperature     = 0.7
)

// GenerationRequest is the outbound payload for one generate action.
// It is built fresh per action and discarded once the call completes.
type GenerationRequest struct {
	SystemInstruction string
	Role              string
	Task              string
	MaxOutputTokens   int
	Temperature       float64
}

// BuildRequest composes a request from a role and task. Callers pass
// already-trimmed, non-empty values; BuildRequest does not re-validate.
func BuildRequest(role, task string) GenerationRequest {
	return GenerationRequest{
		SystemInstruction: SystemInstruction,
		Role:              role,
		Task:              task,
		MaxOutputTokens:   MaxOutputTokens,
		Temperature:       Temperature,
	}
}

// UserMessage returns the two-line user turn sent to the model.
func (r GenerationRequest) UserMessage() string {
	return "My position: " + r.Role + "\nMy task: " + r.Task
}

// Validate checks universal constraints on GenerationRequest.
// Generator implementations call it before touching the network.
func (r GenerationRequest) Validate() error {
	if r.Role == "" || r.Task == "" {
		return ErrMissingInput
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return &Error{Kind: KindLocalValidation, Detail: fmt.Sprintf("temperature must be in [0, 2], got %g", r.Temperature)}
	}
	if r.MaxOutputTokens <= 0 {
		return &Error{Kind: KindLocalValidation, Detail: fmt.Sprintf("max output tokens must be positive, got %d", r.MaxOutputTokens)}
	}
	return nil
}

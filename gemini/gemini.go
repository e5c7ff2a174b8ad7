// Package gemini implements [promptsmith.Generator] for the Google Gemini
// generateContent endpoint.
//
// Requests and responses are encoded with the google.golang.org/genai wire
// types. The key travels as the key query parameter and the instruction
// under the snake_case system_instruction field, so the client speaks HTTP
// directly instead of going through the SDK's transport.
package gemini

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.5-flash"
)

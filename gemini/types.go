package gemini

import "google.golang.org/genai"

type apiRequest struct {
	SystemInstruction *genai.Content      `json:"system_instruction"`
	Contents          []*genai.Content    `json:"contents"`
	GenerationConfig  apiGenerationConfig `json:"generationConfig"`
}

type apiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type apiErrorResponse struct {
	Error *genai.APIError `json:"error"`
}

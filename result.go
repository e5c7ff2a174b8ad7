package promptsmith

// Result is a validated reply, ready for display.
type Result struct {
	Prompt        string
	ToolName      string
	ToolReasoning string
}

// Present is the single structural validity gate between parsing and
// display. A reply without a usable prompt is a MalformedReply; the tool
// fields pass through with their lenient defaults.
func Present(p ParsedResult) (Result, error) {
	if !p.HasPrompt || p.Prompt == "" {
		return Result{}, &Error{Kind: KindMalformedReply}
	}
	return Result{
		Prompt:        p.Prompt,
		ToolName:      p.ToolName,
		ToolReasoning: p.ToolReasoning,
	}, nil
}

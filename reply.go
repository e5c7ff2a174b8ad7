package promptsmith

import "strings"

// Section markers of the reply contract.
const (
	PromptStart = "===PROMPT_START==="
	PromptEnd   = "===PROMPT_END==="
	ToolStart   = "===TOOL_START==="
	ToolEnd     = "===TOOL_END==="

	toolLabel      = "TOOL:"
	reasoningLabel = "REASONING:"
)

// DefaultToolName is reported when the reply names no tool.
const DefaultToolName = "Unknown"

// ParsedResult is the structural decomposition of a model reply.
// HasPrompt distinguishes an absent prompt section from an empty one.
type ParsedResult struct {
	Prompt        string
	HasPrompt     bool
	ToolName      string
	ToolReasoning string
}

// Parse extracts the prompt and tool sections from a raw reply. It never
// fails: missing pieces are reported through HasPrompt and the tool
// defaults.
func Parse(raw string) ParsedResult {
	p := ParsedResult{ToolName: DefaultToolName}
	p.Prompt, p.HasPrompt = section(raw, PromptStart, PromptEnd)

	tool, ok := section(raw, ToolStart, ToolEnd)
	if !ok || tool == "" {
		return p
	}
	if i := labelEnd(tool, toolLabel); i >= 0 {
		name, _, _ := strings.Cut(tool[i:], "\n")
		if name = strings.TrimSpace(name); name != "" {
			p.ToolName = name
		}
	}
	if _, reasoning, ok := strings.Cut(tool, reasoningLabel); ok {
		// Drop the closing "**" of a bolded label.
		p.ToolReasoning = strings.TrimSpace(strings.TrimLeft(reasoning, "* \t"))
	}
	return p
}

// Format renders p in the reply contract. For well-formed input (trimmed
// fields, single-line tool name, no markers or labels inside fields) Parse(Format(p))
// equals p.
func Format(p ParsedResult) string {
	var b strings.Builder
	if p.HasPrompt {
		b.WriteString(PromptStart + "\n")
		b.WriteString(p.Prompt + "\n")
		b.WriteString(PromptEnd + "\n\n")
	}
	b.WriteString(ToolStart + "\n")
	b.WriteString(toolLabel + " " + p.ToolName + "\n")
	b.WriteString(reasoningLabel + " " + p.ToolReasoning + "\n")
	b.WriteString(ToolEnd)
	return b.String()
}

// section returns the trimmed text between the first start marker and the
// first end marker after it. Either marker missing means no section.
func section(s, start, end string) (string, bool) {
	_, rest, ok := strings.Cut(s, start)
	if !ok {
		return "", false
	}
	body, _, ok := strings.Cut(rest, end)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(body), true
}

// labelEnd returns the offset just past label on the first line of s that
// begins with it (ignoring indentation), or -1.
func labelEnd(s, label string) int {
	offset := 0
	for line := range strings.Lines(s) {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, label) {
			return offset + len(line) - len(trimmed) + len(label)
		}
		offset += len(line)
	}
	return -1
}

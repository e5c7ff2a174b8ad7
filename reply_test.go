package promptsmith_test

import (
	"testing"

	"github.com/fwojciec/promptsmith"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		got := promptsmith.Parse("")
		assert.False(t, got.HasPrompt)
		assert.Equal(t, "Unknown", got.ToolName)
		assert.Equal(t, "", got.ToolReasoning)
	})

	t.Run("well-formed reply", func(t *testing.T) {
		t.Parallel()
		raw := "===PROMPT_START===\nHello\n===PROMPT_END===\n===TOOL_START===\nTOOL: Gemini Free (free)\nREASONING: Good fit.\n===TOOL_END==="
		got := promptsmith.Parse(raw)
		assert.True(t, got.HasPrompt)
		assert.Equal(t, "Hello", got.Prompt)
		assert.Equal(t, "Gemini Free (free)", got.ToolName)
		assert.Equal(t, "Good fit.", got.ToolReasoning)
	})

	t.Run("missing tool end marker drops the tool section", func(t *testing.T) {
		t.Parallel()
		raw := "===PROMPT_START===\nHello\n===PROMPT_END===\n===TOOL_START===\nTOOL: Claude Free (free)\nREASONING: Long documents."
		got := promptsmith.Parse(raw)
		assert.Equal(t, "Hello", got.Prompt)
		assert.Equal(t, "Unknown", got.ToolName)
		assert.Equal(t, "", got.ToolReasoning)
	})

	t.Run("missing prompt end marker means no prompt", func(t *testing.T) {
		t.Parallel()
		got := promptsmith.Parse("===PROMPT_START===\nHello")
		assert.False(t, got.HasPrompt)
		assert.Empty(t, got.Prompt)
	})

	t.Run("end marker before start marker does not match", func(t *testing.T) {
		t.Parallel()
		got := promptsmith.Parse("===PROMPT_END===\nHello\n===PROMPT_START===")
		assert.False(t, got.HasPrompt)
	})

	t.Run("empty sections are present but empty", func(t *testing.T) {
		t.Parallel()
		got := promptsmith.Parse("===PROMPT_START===\n \n===PROMPT_END===\n===TOOL_START======TOOL_END===")
		assert.True(t, got.HasPrompt)
		assert.Equal(t, "", got.Prompt)
		assert.Equal(t, "Unknown", got.ToolName)
		assert.Equal(t, "", got.ToolReasoning)
	})

	t.Run("duplicate markers use the first match", func(t *testing.T) {
		t.Parallel()
		raw := "===PROMPT_START===first===PROMPT_END===\n===PROMPT_START===second===PROMPT_END==="
		got := promptsmith.Parse(raw)
		assert.Equal(t, "first", got.Prompt)
	})

	t.Run("reasoning spans multiple lines", func(t *testing.T) {
		t.Parallel()
		raw := "===TOOL_START===\nTOOL: NotebookLM (free)\nREASONING: Line one.\nLine two.\n\nLine three.\n===TOOL_END==="
		got := promptsmith.Parse(raw)
		assert.Equal(t, "NotebookLM (free)", got.ToolName)
		assert.Equal(t, "Line one.\nLine two.\n\nLine three.", got.ToolReasoning)
	})

	t.Run("tool name is limited to its line", func(t *testing.T) {
		t.Parallel()
		raw := "===TOOL_START===\n  TOOL:   Perplexity Free (free)  \nREASONING: Citations.\n===TOOL_END==="
		got := promptsmith.Parse(raw)
		assert.Equal(t, "Perplexity Free (free)", got.ToolName)
		assert.Equal(t, "Citations.", got.ToolReasoning)
	})

	t.Run("tool section without labels keeps defaults", func(t *testing.T) {
		t.Parallel()
		got := promptsmith.Parse("===TOOL_START===\nsomething else\n===TOOL_END===")
		assert.Equal(t, "Unknown", got.ToolName)
		assert.Equal(t, "", got.ToolReasoning)
	})

	t.Run("blank tool label keeps default name", func(t *testing.T) {
		t.Parallel()
		got := promptsmith.Parse("===TOOL_START===\nTOOL:\nREASONING: Because.\n===TOOL_END===")
		assert.Equal(t, "Unknown", got.ToolName)
		assert.Equal(t, "Because.", got.ToolReasoning)
	})

	t.Run("reasoning label inside a bullet", func(t *testing.T) {
		t.Parallel()
		raw := "===TOOL_START===\nTOOL: Claude Free (free)\n- REASONING: Good fit.\n===TOOL_END==="
		got := promptsmith.Parse(raw)
		assert.Equal(t, "Claude Free (free)", got.ToolName)
		assert.Equal(t, "Good fit.", got.ToolReasoning)
	})

	t.Run("bold reasoning label", func(t *testing.T) {
		t.Parallel()
		raw := "===TOOL_START===\nTOOL: Claude Free (free)\n**REASONING:** Good fit.\n===TOOL_END==="
		got := promptsmith.Parse(raw)
		assert.Equal(t, "Good fit.", got.ToolReasoning)
	})

	t.Run("reasoning on the tool line", func(t *testing.T) {
		t.Parallel()
		raw := "===TOOL_START===\nTOOL: Claude Free (free) REASONING: Good fit.\n===TOOL_END==="
		got := promptsmith.Parse(raw)
		assert.Equal(t, "Good fit.", got.ToolReasoning)
	})

	t.Run("text outside sections is ignored", func(t *testing.T) {
		t.Parallel()
		raw := "Sure! Here you go.\n===PROMPT_START===\nI am a teacher.\n===PROMPT_END===\ntrailing chatter"
		got := promptsmith.Parse(raw)
		assert.Equal(t, "I am a teacher.", got.Prompt)
	})
}

func TestFormat_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []promptsmith.ParsedResult{
		{
			Prompt:        "I am a data scientist.\n\n1. Clean the data\n2. Fit a model",
			HasPrompt:     true,
			ToolName:      "Google Colab (free)",
			ToolReasoning: "Runs Python for free.\nColab beats Kaggle here.",
		},
		{
			Prompt:        "Short prompt.",
			HasPrompt:     true,
			ToolName:      "Unknown",
			ToolReasoning: "",
		},
		{
			HasPrompt: false,
			ToolName:  "Meta AI (free)",
		},
	}
	for _, want := range cases {
		got := promptsmith.Parse(promptsmith.Format(want))
		assert.Equal(t, want, got)
	}
}

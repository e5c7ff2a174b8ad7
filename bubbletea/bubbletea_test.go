package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/promptsmith"
	bt "github.com/fwojciec/promptsmith/bubbletea"
	"github.com/stretchr/testify/require"
)

var sampleResult = promptsmith.Result{
	Prompt:        "I am a teacher. Help me plan a unit on fractions.",
	ToolName:      "Claude Free (free)",
	ToolReasoning: "Strong at structured planning.",
}

// newKeyring returns a keyring holding token, or an empty one.
func newKeyring(token string) *promptsmith.Keyring {
	k := promptsmith.NewKeyring()
	k.Set(token)
	return k
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, gen bt.GenerateFunc, keys *promptsmith.Keyring, opts ...bt.Option) bt.Model {
	t.Helper()
	m := bt.New(gen, keys, promptsmith.DefaultPositions, promptsmith.DefaultTheme(), opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// typeText sends s as individual rune key presses.
func typeText(t *testing.T, m bt.Model, s string) bt.Model {
	t.Helper()
	for _, r := range s {
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// fillForm picks the first position and types task into the task field.
func fillForm(t *testing.T, m bt.Model, task string) bt.Model {
	t.Helper()
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyTab})
	return typeText(t, m, task)
}

func staticGenerate(res promptsmith.Result, err error) bt.GenerateFunc {
	return func(context.Context, *promptsmith.Keyring, string, string) (promptsmith.Result, error) {
		return res, err
	}
}

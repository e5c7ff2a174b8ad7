package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// ResultBlock is a renderable part of a generate result.
// Unlike tea.Model, View takes a width parameter so the root model
// controls layout and blocks are testable in isolation.
type ResultBlock interface {
	Update(tea.Msg) (ResultBlock, tea.Cmd)
	View(width int) string
}

// ToggleMsg tells a collapsible block to toggle its collapsed state.
// Sent by the root model when the user presses the toggle key.
type ToggleMsg struct{}

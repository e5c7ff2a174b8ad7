package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var _ ResultBlock = (*ToolBlock)(nil)

const toolLabel = "Recommended tool: "

// ToolBlock renders the recommended tool with collapsible reasoning.
type ToolBlock struct {
	name      string
	reasoning string
	collapsed bool
	styles    Styles
}

// NewToolBlock creates a ToolBlock that starts expanded.
func NewToolBlock(name, reasoning string, styles Styles) *ToolBlock {
	return &ToolBlock{name: name, reasoning: reasoning, styles: styles}
}

// Collapsible reports whether the block has reasoning to hide.
func (b *ToolBlock) Collapsible() bool { return b.reasoning != "" }

func (b *ToolBlock) Update(msg tea.Msg) (ResultBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok && b.Collapsible() {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ToolBlock) View(width int) string {
	room := max(width-runewidth.StringWidth(toolLabel), 8)
	header := b.styles.Label.Render(toolLabel) + b.styles.Tool.Render(runewidth.Truncate(b.name, room, "…"))
	if !b.Collapsible() {
		return header
	}

	indicator := "▼"
	if b.collapsed {
		indicator = "▶"
	}
	why := b.styles.Muted.Render(indicator + " Why this tool")
	if b.collapsed {
		return header + "\n" + why
	}
	reasoning := lipgloss.NewStyle().Width(width).Render(b.reasoning)
	return header + "\n" + why + "\n" + reasoning
}

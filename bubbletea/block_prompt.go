package bubbletea

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/promptsmith/goldmark"
	"github.com/rivo/uniseg"
)

var _ ResultBlock = (*PromptBlock)(nil)

// PromptBlock renders the generated prompt in a bordered box with its word
// count.
type PromptBlock struct {
	prompt   string
	words    int
	renderer *goldmark.Renderer
	styles   Styles
}

// NewPromptBlock creates a PromptBlock for prompt.
func NewPromptBlock(prompt string, renderer *goldmark.Renderer, styles Styles) *PromptBlock {
	return &PromptBlock{
		prompt:   prompt,
		words:    countWords(prompt),
		renderer: renderer,
		styles:   styles,
	}
}

// Words returns the prompt's word count.
func (b *PromptBlock) Words() int { return b.words }

func (b *PromptBlock) Update(msg tea.Msg) (ResultBlock, tea.Cmd) {
	return b, nil
}

func (b *PromptBlock) View(width int) string {
	// Border and padding take two columns on each side.
	inner := max(width-4, 10)
	header := b.styles.Prompt.Render("Your prompt") + " " +
		b.styles.Muted.Render(fmt.Sprintf("(%d words)", b.words))
	body := b.styles.PromptBox.Width(inner + 2).Render(b.renderer.Render(b.prompt, inner))
	return header + "\n" + body
}

// countWords counts Unicode word segments that contain a letter or digit.
func countWords(s string) int {
	var (
		word  string
		n     int
		state = -1
	)
	for len(s) > 0 {
		word, s, state = uniseg.FirstWordInString(s, state)
		if strings.IndexFunc(word, isWordRune) >= 0 {
			n++
		}
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

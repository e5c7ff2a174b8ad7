// Package goldmark renders a generated prompt for the terminal. The prompt
// is parsed as CommonMark with goldmark so numbered steps, bullets, and
// emphasis the model writes come out styled; line breaks the model chose
// are kept so the rendered text matches what gets copied.
package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/promptsmith"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

const defaultWidth = 80

// Renderer turns prompt text into ANSI-styled output. It is safe for
// concurrent use once created.
type Renderer struct {
	parser  goldmark.Markdown
	heading lipgloss.Style
	marker  lipgloss.Style
	strong  lipgloss.Style
	em      lipgloss.Style
	code    lipgloss.Style
	muted   lipgloss.Style
}

// New creates a Renderer styled with theme.
func New(theme promptsmith.Theme) *Renderer {
	return &Renderer{
		parser:  goldmark.New(),
		heading: lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		marker:  lipgloss.NewStyle().Foreground(ansiColor(theme.Prompt)),
		strong:  lipgloss.NewStyle().Bold(true),
		em:      lipgloss.NewStyle().Italic(true),
		code:    lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)),
		muted:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
	}
}

// Render returns prompt styled and word-wrapped to width. A non-positive
// width means 80 columns.
func (r *Renderer) Render(prompt string, width int) string {
	if strings.TrimSpace(prompt) == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	source := []byte(prompt)
	doc := r.parser.Parser().Parse(text.NewReader(source))

	w := &writer{r: r, source: source, width: width}
	w.blocks(doc, 0)
	return strings.TrimRight(w.out.String(), "\n")
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

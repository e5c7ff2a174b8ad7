package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark/ast"
)

// writer accumulates the output of a single Render call.
type writer struct {
	r      *Renderer
	source []byte
	width  int
	out    strings.Builder
}

func (w *writer) blocks(parent ast.Node, indent int) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n, indent)
		if n.NextSibling() != nil {
			w.out.WriteByte('\n')
		}
	}
}

func (w *writer) block(n ast.Node, indent int) {
	pad := strings.Repeat(" ", indent)
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		w.wrapped(pad, pad, w.inline(n))
	case *ast.Heading:
		w.wrapped(pad, pad, w.r.heading.Render(w.inline(n)))
	case *ast.List:
		w.list(n, indent)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(w.source)), "\n")
			w.out.WriteString(pad + w.r.muted.Render("│") + " " + w.r.code.Render(line) + "\n")
		}
	case *ast.ThematicBreak:
		w.out.WriteString(pad + w.r.muted.Render(strings.Repeat("─", max(w.width-indent, 3))) + "\n")
	case *ast.Blockquote:
		w.blocks(n, indent+2)
	default:
		lines := n.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			w.out.WriteString(pad)
			w.out.Write(seg.Value(w.source))
		}
	}
}

func (w *writer) list(l *ast.List, indent int) {
	number := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		var marker string
		if l.IsOrdered() {
			marker = strconv.Itoa(number) + ". "
			number++
		} else {
			marker = "• "
		}
		first := strings.Repeat(" ", indent) + w.r.marker.Render(marker)
		rest := strings.Repeat(" ", indent+len([]rune(marker)))

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				w.wrappedAt(first, rest, w.inline(c), indent+len([]rune(marker)))
			case *ast.List:
				w.list(c, indent+len([]rune(marker)))
			default:
				w.block(c, indent+len([]rune(marker)))
			}
			first = rest
		}
	}
}

func (w *writer) wrapped(first, rest, s string) {
	w.wrappedAt(first, rest, s, len(first))
}

// wrappedAt word-wraps s to the space left after a prefix of prefixWidth
// columns and writes it with first before the first line and rest before
// the others.
func (w *writer) wrappedAt(first, rest, s string, prefixWidth int) {
	body := lipgloss.NewStyle().Width(max(w.width-prefixWidth, 10)).Render(s)
	for i, line := range strings.Split(body, "\n") {
		if i == 0 {
			w.out.WriteString(first)
		} else {
			w.out.WriteString(rest)
		}
		w.out.WriteString(strings.TrimRight(line, " "))
		w.out.WriteByte('\n')
	}
}

func (w *writer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.span(c, &b)
	}
	return b.String()
}

func (w *writer) span(n ast.Node, b *strings.Builder) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(w.source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			b.WriteByte('\n')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		if n.Level >= 2 {
			b.WriteString(w.r.strong.Render(w.inline(n)))
		} else {
			b.WriteString(w.r.em.Render(w.inline(n)))
		}
	case *ast.CodeSpan:
		b.WriteString(w.r.code.Render(w.inline(n)))
	case *ast.Link:
		b.WriteString(w.inline(n))
		b.WriteString(" " + w.r.muted.Render("("+string(n.Destination)+")"))
	case *ast.AutoLink:
		b.Write(n.URL(w.source))
	case *ast.RawHTML:
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			b.Write(seg.Value(w.source))
		}
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.span(c, b)
		}
	}
}

package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// Seq returns the number of the latest generate action.
func Seq(m Model) int {
	return m.seq
}

// CopiedExpired builds the message that ends the flash of copy number seq.
func CopiedExpired(seq int) tea.Msg {
	return copiedExpiredMsg{seq: seq}
}

// CountWords exports countWords for testing.
func CountWords(s string) int {
	return countWords(s)
}

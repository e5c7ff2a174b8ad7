// Package bubbletea provides the terminal front end for promptsmith: key
// entry, the position and task form, and the generated prompt with its
// recommended tool.
package bubbletea

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/promptsmith"
)

// GenerateFunc runs one generate action for the session's keyring. It
// blocks until the reply is parsed or the action fails.
type GenerateFunc func(ctx context.Context, keys *promptsmith.Keyring, role, task string) (promptsmith.Result, error)

// CopyFunc writes text to the system clipboard.
type CopyFunc func(text string) error

// Option configures a [Model].
type Option func(*Model)

// WithClipboard replaces the clipboard writer. Default is
// clipboard.WriteAll.
func WithClipboard(fn CopyFunc) Option {
	return func(m *Model) { m.copy = fn }
}

// WithContext sets the context generate actions run under. Run sets it to
// its own context.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// GenerateDoneMsg carries the outcome of the generate action numbered Seq.
type GenerateDoneMsg struct {
	Seq    int
	Result promptsmith.Result
	Err    error
}

// copiedExpiredMsg ends the "Copied!" flash started by copy number seq.
type copiedExpiredMsg struct {
	seq int
}

func defaultCopy(text string) error {
	return clipboard.WriteAll(text)
}

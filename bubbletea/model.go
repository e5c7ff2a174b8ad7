package bubbletea

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/promptsmith"
	"github.com/fwojciec/promptsmith/goldmark"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

// copiedFor is how long the "Copied!" confirmation stays visible.
const copiedFor = 2 * time.Second

// Stage is the screen the TUI is showing.
type Stage int

const (
	StageKey    Stage = iota // API key entry
	StageForm                // position and task form
	StageResult              // generated prompt and recommended tool
)

type field int

const (
	fieldPosition field = iota
	fieldCustom
	fieldTask
)

// Model is the Bubble Tea model for the promptsmith TUI.
type Model struct {
	// KeyInput is the masked API key field. Exported for test access.
	KeyInput textinput.Model
	// CustomInput holds the position typed when Other is selected.
	CustomInput textinput.Model
	// TaskInput is the multi-line task description.
	TaskInput textarea.Model
	// Viewport scrolls the result blocks.
	Viewport viewport.Model
	// Spinner animates while a request is outstanding.
	Spinner spinner.Model

	ctx       context.Context
	generate  GenerateFunc
	copy      CopyFunc
	keys      *promptsmith.Keyring
	positions []string
	renderer  *goldmark.Renderer
	styles    Styles

	stage  Stage
	focus  field
	cursor int

	blocks []ResultBlock
	result *promptsmith.Result

	// seq numbers generate actions; only the completion matching the
	// latest one is applied.
	seq     int
	running bool
	err     error

	copied  bool
	copySeq int

	width int
	ready bool
}

// New creates a TUI Model. keys is the session keyring; when it already
// holds a credential the form is shown first. positions must end with
// [promptsmith.OtherPosition].
func New(generate GenerateFunc, keys *promptsmith.Keyring, positions []string, theme promptsmith.Theme, opts ...Option) Model {
	ki := textinput.New()
	ki.Placeholder = "Paste your Google Gemini API key"
	ki.Prompt = "> "
	ki.EchoMode = textinput.EchoPassword
	ki.EchoCharacter = '•'

	ci := textinput.New()
	ci.Placeholder = "Enter your position"
	ci.Prompt = "  "
	ci.CharLimit = 100

	ta := textarea.New()
	ta.Placeholder = "Describe what you want to get done..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(5)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		KeyInput:    ki,
		CustomInput: ci,
		TaskInput:   ta,
		Spinner:     sp,
		ctx:         context.Background(),
		generate:    generate,
		copy:        defaultCopy,
		keys:        keys,
		positions:   slices.Clone(positions),
		renderer:    goldmark.New(theme),
		styles:      NewStyles(theme),
	}
	for _, o := range opts {
		o(&m)
	}
	if keys.Present() {
		m.stage = StageForm
	} else {
		m.stage = StageKey
		m.KeyInput.Focus()
	}
	return m
}

// Stage returns the screen being shown.
func (m Model) Stage() Stage { return m.stage }

// Running returns whether a generate action is outstanding.
func (m Model) Running() bool { return m.running }

// Err returns the error of the last action, if any.
func (m Model) Err() error { return m.err }

// Result returns the last successful result, if one is being shown.
func (m Model) Result() (promptsmith.Result, bool) {
	if m.result == nil {
		return promptsmith.Result{}, false
	}
	return *m.result, true
}

// Copied returns whether the "Copied!" confirmation is showing.
func (m Model) Copied() bool { return m.copied }

// Role returns the position the form currently resolves to.
func (m Model) Role() string {
	if len(m.positions) == 0 {
		return ""
	}
	return promptsmith.ResolveRole(m.positions[m.cursor], m.CustomInput.Value())
}

// CanGenerate reports whether the generate action is enabled.
func (m Model) CanGenerate() bool {
	return !m.running && promptsmith.CanGenerate(m.keys.Present(), m.Role(), m.TaskInput.Value())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case GenerateDoneMsg:
		return m.handleDone(msg), nil

	case copiedExpiredMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("promptsmith"))
	b.WriteString(m.styles.Muted.Render(" · prompts and free AI tool picks for your job"))
	b.WriteString("\n\n")

	switch m.stage {
	case StageKey:
		b.WriteString(m.keyView())
	case StageForm:
		b.WriteString(m.formView())
	case StageResult:
		b.WriteString(m.Viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	titleHeight := 2
	statusHeight := 1
	borderHeight := 1
	vpHeight := max(msg.Height-titleHeight-statusHeight-borderHeight, 1)

	m.width = msg.Width
	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Viewport.SetContent(m.renderContent())

	m.KeyInput.Width = max(msg.Width-4, 10)
	m.CustomInput.Width = max(msg.Width-4, 10)
	m.TaskInput.SetWidth(msg.Width)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	switch m.stage {
	case StageKey:
		if key.Matches(msg, keys.Submit) {
			return m.saveKey()
		}
	case StageForm:
		switch {
		case key.Matches(msg, keys.Generate):
			return m.startGenerate()
		case key.Matches(msg, keys.ChangeKey):
			return m.changeKey()
		case key.Matches(msg, keys.Next):
			return m.moveFocus(1)
		case key.Matches(msg, keys.Prev):
			return m.moveFocus(-1)
		case m.focus == fieldPosition && key.Matches(msg, keys.Up):
			return m.moveCursor(-1), nil
		case m.focus == fieldPosition && key.Matches(msg, keys.Down):
			return m.moveCursor(1), nil
		case m.focus != fieldTask && key.Matches(msg, keys.Submit):
			return m.moveFocus(1)
		}
	case StageResult:
		switch {
		case key.Matches(msg, keys.Generate):
			return m.startGenerate()
		case key.Matches(msg, keys.ChangeKey):
			return m.changeKey()
		case key.Matches(msg, keys.Copy):
			return m.copyPrompt()
		case key.Matches(msg, keys.Toggle):
			return m.toggleReasoning(), nil
		case key.Matches(msg, keys.Back):
			m.stage = StageForm
			m.copied = false
			return m.setFocus(m.focus)
		}
	}

	return m.updateFocused(msg)
}

// moveCursor moves the position selection. Leaving Other discards the
// custom text.
func (m Model) moveCursor(delta int) Model {
	next := min(max(m.cursor+delta, 0), len(m.positions)-1)
	if next != m.cursor && m.positions[m.cursor] == promptsmith.OtherPosition {
		m.CustomInput.Reset()
	}
	m.cursor = next
	return m
}

// updateFocused forwards msg to the component that owns input on the
// current screen.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.stage {
	case StageKey:
		m.KeyInput, cmd = m.KeyInput.Update(msg)
	case StageForm:
		switch m.focus {
		case fieldCustom:
			m.CustomInput, cmd = m.CustomInput.Update(msg)
		case fieldTask:
			m.TaskInput, cmd = m.TaskInput.Update(msg)
		}
	case StageResult:
		m.Viewport, cmd = m.Viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) saveKey() (tea.Model, tea.Cmd) {
	m.keys.Set(m.KeyInput.Value())
	m.KeyInput.Reset()
	if !m.keys.Present() {
		m.err = promptsmith.ErrNoCredential
		return m, nil
	}
	m.err = nil
	m.KeyInput.Blur()
	m.stage = StageForm
	return m.setFocus(fieldPosition)
}

func (m Model) changeKey() (tea.Model, tea.Cmd) {
	m.keys.Clear()
	// Bump seq so an outstanding request cannot land on the key screen.
	m.seq++
	m.running = false
	m.err = nil
	m.blocks = nil
	m.result = nil
	m.copied = false
	m.stage = StageKey
	m.CustomInput.Blur()
	m.TaskInput.Blur()
	m.Viewport.SetContent("")
	return m, m.KeyInput.Focus()
}

func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	if !m.CanGenerate() {
		return m, nil
	}
	role, task := m.Role(), m.TaskInput.Value()

	m.seq++
	m.running = true
	m.err = nil
	m.blocks = nil
	m.result = nil
	m.copied = false
	m.stage = StageForm
	m.Viewport.SetContent("")

	return m, tea.Batch(m.Spinner.Tick, runGenerate(m.ctx, m.generate, m.keys, m.seq, role, task))
}

func (m Model) handleDone(msg GenerateDoneMsg) Model {
	if msg.Seq != m.seq {
		return m
	}
	m.running = false
	if msg.Err != nil {
		m.err = msg.Err
		return m
	}

	res := msg.Result
	m.result = &res
	m.blocks = []ResultBlock{
		NewPromptBlock(res.Prompt, m.renderer, m.styles),
		NewToolBlock(res.ToolName, res.ToolReasoning, m.styles),
	}
	m.stage = StageResult
	m.CustomInput.Blur()
	m.TaskInput.Blur()
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoTop()
	return m
}

func (m Model) copyPrompt() (tea.Model, tea.Cmd) {
	if m.result == nil {
		return m, nil
	}
	if err := m.copy(m.result.Prompt); err != nil {
		m.err = fmt.Errorf("copy to clipboard: %w", err)
		return m, nil
	}
	m.err = nil
	m.copied = true
	m.copySeq++
	seq := m.copySeq
	return m, tea.Tick(copiedFor, func(time.Time) tea.Msg {
		return copiedExpiredMsg{seq: seq}
	})
}

func (m Model) toggleReasoning() Model {
	for i, b := range m.blocks {
		if tb, ok := b.(*ToolBlock); ok && tb.Collapsible() {
			m.blocks[i], _ = tb.Update(ToggleMsg{})
		}
	}
	m.Viewport.SetContent(m.renderContent())
	return m
}

// fields lists the focusable form fields in tab order. The custom field
// exists only while Other is selected.
func (m Model) fields() []field {
	if len(m.positions) > 0 && m.positions[m.cursor] == promptsmith.OtherPosition {
		return []field{fieldPosition, fieldCustom, fieldTask}
	}
	return []field{fieldPosition, fieldTask}
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	fs := m.fields()
	i := max(slices.Index(fs, m.focus), 0)
	return m.setFocus(fs[(i+delta+len(fs))%len(fs)])
}

func (m Model) setFocus(f field) (Model, tea.Cmd) {
	m.focus = f
	m.CustomInput.Blur()
	m.TaskInput.Blur()
	switch f {
	case fieldCustom:
		return m, m.CustomInput.Focus()
	case fieldTask:
		return m, m.TaskInput.Focus()
	}
	return m, nil
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) keyView() string {
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("Google Gemini API key"))
	b.WriteString("\n")
	b.WriteString(m.KeyInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("Get a free key at aistudio.google.com/apikey. It is kept in memory for this session only."))
	return b.String()
}

func (m Model) formView() string {
	var b strings.Builder
	b.WriteString(m.label("Your position", m.focus == fieldPosition))
	b.WriteString("\n")
	room := max(m.width-4, 8)
	for i, p := range m.positions {
		name := runewidth.Truncate(p, room, "…")
		switch {
		case i == m.cursor && m.focus == fieldPosition:
			b.WriteString(m.styles.Focused.Render("› " + name))
		case i == m.cursor:
			b.WriteString(m.styles.Label.Render("› " + name))
		default:
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	if slices.Contains(m.fields(), fieldCustom) {
		b.WriteString(m.CustomInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.label("Your task", m.focus == fieldTask))
	b.WriteString("\n")
	b.WriteString(m.TaskInput.View())
	return b.String()
}

func (m Model) label(text string, focused bool) string {
	if focused {
		return m.styles.Focused.Render(text)
	}
	return m.styles.Label.Render(text)
}

func (m Model) statusLine() string {
	if m.running {
		return m.Spinner.View() + m.styles.Muted.Render(" Generating your prompt...")
	}
	if m.err != nil {
		return m.styles.Error.Render(promptsmith.ErrorMessage(m.err))
	}
	if m.copied {
		return m.styles.Success.Render("Copied!")
	}
	switch m.stage {
	case StageKey:
		return m.styles.Muted.Render(helpLine(keys.Submit, keys.Quit))
	case StageForm:
		bindings := []key.Binding{keys.Next, keys.Up}
		if m.CanGenerate() {
			bindings = append(bindings, keys.Generate)
		}
		bindings = append(bindings, keys.ChangeKey, keys.Quit)
		return m.styles.Muted.Render(helpLine(bindings...))
	default:
		return m.styles.Muted.Render(helpLine(keys.Copy, keys.Toggle, keys.Back, keys.Generate, keys.ChangeKey))
	}
}

// runGenerate runs the generate action off the event loop and reports its
// outcome tagged with seq.
func runGenerate(ctx context.Context, generate GenerateFunc, keyring *promptsmith.Keyring, seq int, role, task string) tea.Cmd {
	return func() tea.Msg {
		res, err := generate(ctx, keyring, role, task)
		return GenerateDoneMsg{Seq: seq, Result: res, Err: err}
	}
}

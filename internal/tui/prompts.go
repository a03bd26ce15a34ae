package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zyra.dev/zyra/internal/utils"
)

// ErrInteractiveDisabled is returned when a prompt is needed but the session is not interactive
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled (not a terminal or ZYRA_NON_INTERACTIVE is set)")

// ErrCanceled is returned when the user backs out of a prompt
var ErrCanceled = errors.New("canceled")

var (
	promptFrame = lipgloss.NewStyle().Margin(1, 0)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// TerminalPrompter asks questions on the controlling terminal. Every method
// fails with ErrInteractiveDisabled when Disabled is set or stdin or stdout
// is not a TTY.
type TerminalPrompter struct {
	Disabled bool
}

func (p TerminalPrompter) interactive() bool {
	return !p.Disabled && utils.IsTerminal()
}

// Text asks for a single line, prefilled with defaultValue
func (p TerminalPrompter) Text(title, defaultValue string) (string, error) {
	input := textinput.New()
	input.SetValue(defaultValue)
	input.CharLimit = 256
	input.Width = 80
	input.Focus()

	final, err := runPrompt(p, lineModel{input: input, title: title})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(final.input.Value()), nil
}

// Multiline asks for free-form text such as a PR body
func (p TerminalPrompter) Multiline(title, defaultValue string) (string, error) {
	if !p.interactive() {
		return "", ErrInteractiveDisabled
	}

	var answer string
	if err := survey.AskOne(&survey.Multiline{Message: title, Default: defaultValue}, &answer); err != nil {
		return "", err
	}
	return strings.TrimRight(answer, "\n"), nil
}

// Confirm asks a yes/no question
func (p TerminalPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	final, err := runPrompt(p, ConfirmModel{Prompt: title, Choice: defaultValue})
	if err != nil {
		return false, err
	}
	return final.Choice, nil
}

// Select asks for one of options, starting the cursor at defaultIndex
func (p TerminalPrompter) Select(title string, options []string, defaultIndex int) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("nothing to choose from")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	final, err := runPrompt(p, SelectModel{Title: title, Options: options, Cursor: defaultIndex})
	if err != nil {
		return "", err
	}
	return final.Selected, nil
}

// outcome is implemented by every prompt model so runPrompt can surface cancellation
type outcome interface {
	tea.Model
	failure() error
}

// runPrompt runs m to completion and returns the final model
func runPrompt[M outcome](p TerminalPrompter, m M) (M, error) {
	var zero M
	if !p.interactive() {
		return zero, ErrInteractiveDisabled
	}

	out, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout)).Run()
	if err != nil {
		return zero, err
	}
	final, ok := out.(M)
	if !ok {
		return zero, fmt.Errorf("prompt returned %T", out)
	}
	if err := final.failure(); err != nil {
		return zero, err
	}
	return final, nil
}

// isCancel reports keys that abandon any prompt
func isCancel(key tea.KeyMsg) bool {
	return key.Type == tea.KeyCtrlC || key.Type == tea.KeyEsc
}

type lineModel struct {
	input textinput.Model
	title string
	done  bool
	err   error
}

func (m lineModel) Init() tea.Cmd { return textinput.Blink }

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isCancel(key):
			m.err, m.done = ErrCanceled, true
			return m, tea.Quit
		case key.Type == tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	if m.done {
		return ""
	}
	return promptFrame.Render(titleStyle.Render(m.title) + "\n" + m.input.View() +
		ColorDim("\n\n(Enter to accept, Esc to cancel)"))
}

func (m lineModel) failure() error { return m.err }

// ConfirmModel is a yes/no question. y and n answer at once; Enter keeps Choice.
type ConfirmModel struct {
	Prompt string
	Choice bool
	Done   bool
	Err    error
}

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case isCancel(key):
		m.Err, m.Done = ErrCanceled, true
	case key.Type == tea.KeyEnter:
		m.Done = true
	case key.Type == tea.KeyRunes && strings.EqualFold(string(key.Runes), "y"):
		m.Choice, m.Done = true, true
	case key.Type == tea.KeyRunes && strings.EqualFold(string(key.Runes), "n"):
		m.Choice, m.Done = false, true
	default:
		return m, nil
	}
	return m, tea.Quit
}

// View implements tea.Model
func (m ConfirmModel) View() string {
	if m.Done {
		return ""
	}
	hint := "y/N"
	if m.Choice {
		hint = "Y/n"
	}
	return promptFrame.Render(fmt.Sprintf("%s [%s]", titleStyle.Render(m.Prompt), hint))
}

func (m ConfirmModel) failure() error { return m.Err }

// SelectModel picks one entry of Options; the cursor wraps at both ends
type SelectModel struct {
	Title    string
	Options  []string
	Cursor   int
	Selected string
	Done     bool
	Err      error
}

// Init implements tea.Model
func (m SelectModel) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, nil
	}

	n := len(m.Options)
	switch {
	case isCancel(key):
		m.Err, m.Done = ErrCanceled, true
		return m, tea.Quit
	case key.Type == tea.KeyEnter:
		m.Selected, m.Done = m.Options[m.Cursor], true
		return m, tea.Quit
	case key.Type == tea.KeyUp || key.Type == tea.KeyShiftTab:
		m.Cursor = (m.Cursor - 1 + n) % n
	case key.Type == tea.KeyDown || key.Type == tea.KeyTab:
		m.Cursor = (m.Cursor + 1) % n
	}
	return m, nil
}

// View implements tea.Model
func (m SelectModel) View() string {
	if m.Done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.Title) + "\n\n")
	for i, option := range m.Options {
		if i == m.Cursor {
			sb.WriteString("  ➜ " + ColorBranchName(option, true) + "\n")
			continue
		}
		sb.WriteString("    " + option + "\n")
	}
	sb.WriteString(ColorDim("\n(↑/↓ to move, Enter to pick, Esc to cancel)"))
	return promptFrame.Render(sb.String())
}

func (m SelectModel) failure() error { return m.Err }

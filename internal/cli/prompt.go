package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrPromptCancelled is returned when the user leaves a prompt without answering
var ErrPromptCancelled = stderrors.New("prompt cancelled")

// Prompter asks the user for a single line of input
type Prompter interface {
	Prompt(ctx context.Context, label string) (string, error)
}

// TeaPrompter reads input through a bubbletea program
type TeaPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewTeaPrompter creates a prompter bound to the given terminal streams
func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out}
}

// Prompt shows label and returns the entered text
func (p *TeaPrompter) Prompt(ctx context.Context, label string) (string, error) {
	program := tea.NewProgram(
		newPromptModel(label),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok || m.cancelled {
		return "", ErrPromptCancelled
	}
	return m.value, nil
}

// promptModel is a single-line text input
type promptModel struct {
	label     string
	value     string
	done      bool
	cancelled bool
}

func newPromptModel(label string) promptModel {
	return promptModel{label: label}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "backspace":
		if runes := []rune(m.value); len(runes) > 0 {
			m.value = string(runes[:len(runes)-1])
		}
	default:
		if keyMsg.Type == tea.KeyRunes || keyMsg.Type == tea.KeySpace {
			m.value += string(keyMsg.Runes)
		}
	}
	return m, nil
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.label + m.value
}

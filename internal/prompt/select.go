// Package prompt implements the interactive selection used by
// `gho account use` when no account ID is given.
package prompt

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user dismisses the prompt without
// choosing an option.
var ErrCancelled = errors.New("selection cancelled")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// selectModel is a single-choice cursor menu: up/down (or k/j) to
// navigate with wrap-around, enter to choose, esc/q/ctrl+c to cancel.
type selectModel struct {
	title     string
	options   []string
	cursor    int
	choice    string
	cancelled bool
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.options) - 1
		}
	case "down", "j":
		m.cursor++
		if m.cursor >= len(m.options) {
			m.cursor = 0
		}
	case "enter":
		m.choice = m.options[m.cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.choice != "" || m.cancelled {
		return ""
	}
	view := titleStyle.Render(m.title) + "\n"
	for i, option := range m.options {
		if i == m.cursor {
			view += selectedStyle.Render("> "+option) + "\n"
		} else {
			view += "  " + option + "\n"
		}
	}
	return view
}

// Select presents the options and returns the chosen one. Cancellation
// is reported as ErrCancelled.
func Select(title string, options []string) (string, error) {
	program := tea.NewProgram(selectModel{title: title, options: options})
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("selection failed: %w", err)
	}
	result := final.(selectModel)
	if result.cancelled {
		return "", ErrCancelled
	}
	return result.choice, nil
}

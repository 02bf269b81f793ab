// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package prompt

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var promptStyle = lipgloss.NewStyle().Bold(true)

// passwordModel is the Bubble Tea model for a single masked password field.
// It terminates on enter (submit) or esc/ctrl+c (cancel).
type passwordModel struct {
	label     string
	input     textinput.Model
	cancelled bool
}

func newPasswordModel(label string) passwordModel {
	in := textinput.New()
	in.Placeholder = "password"
	in.CharLimit = 4096
	in.Width = 40
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	in.Focus()

	return passwordModel{label: label, input: in}
}

// Init implements [tea.Model].
func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Enter submits the current value; esc and
// ctrl+c cancel without reading a password.
func (m passwordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "enter":
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m passwordModel) View() string {
	return promptStyle.Render(m.label) + " " + m.input.View() + "\n"
}

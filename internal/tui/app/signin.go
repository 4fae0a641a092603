package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/noted/internal/flow"
)

const (
	signInEmail = iota
	signInPassword
)

type signInModel struct {
	flows      *flow.Flows
	focusIndex int
	inputs     []textinput.Model
	submitting bool
	keys       formKeyMap
}

func newSignInModel(flows *flow.Flows) *signInModel {
	m := &signInModel{
		flows:  flows,
		inputs: make([]textinput.Model, 2),
		keys:   newFormKeyMap("sign up"),
	}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 64

		switch i {
		case signInEmail:
			t.Placeholder = "Email"
		case signInPassword:
			t.Placeholder = "Password"
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}

		m.inputs[i] = t
	}

	m.setFocus(0)
	return m
}

func (m *signInModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case signInDoneMsg:
		m.submitting = false
		if msg.err == nil {
			m.inputs[signInPassword].SetValue("")
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.toggle):
			return navigate(flow.RouteSignUp)

		case key.Matches(msg, m.keys.submit) && m.focusIndex == len(m.inputs):
			return m.submit()

		case key.Matches(msg, m.keys.submit), key.Matches(msg, m.keys.next):
			return m.setFocus(m.focusIndex + 1)

		case key.Matches(msg, m.keys.prev):
			return m.setFocus(m.focusIndex - 1)
		}
	}

	return m.updateInputs(msg)
}

func (m *signInModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}
	m.submitting = true

	flows := m.flows
	email := strings.TrimSpace(m.inputs[signInEmail].Value())
	password := m.inputs[signInPassword].Value()
	return func() tea.Msg {
		return signInDoneMsg{err: flows.SignIn(context.Background(), email, password)}
	}
}

func (m *signInModel) setFocus(index int) tea.Cmd {
	if index > len(m.inputs) {
		index = 0
	} else if index < 0 {
		index = len(m.inputs)
	}
	m.focusIndex = index

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (m *signInModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *signInModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sign In"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		if i < len(m.inputs)-1 {
			b.WriteRune('\n')
		}
	}

	label := "[ Sign In ]"
	if m.submitting {
		label = "[ Signing in... ]"
	}
	button := blurredButton(label)
	if m.focusIndex == len(m.inputs) {
		button = focusedButton(label)
	}
	fmt.Fprintf(&b, "\n\n%s\n\n", button)
	b.WriteString(helpStyle.Render(helpLine(m.keys.next, m.keys.submit, m.keys.toggle)))

	return b.String()
}

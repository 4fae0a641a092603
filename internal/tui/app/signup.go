package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/Paintersrp/noted/internal/credentials"
	"github.com/Paintersrp/noted/internal/flow"
)

var signUpFields = []credentials.Field{
	credentials.FieldName,
	credentials.FieldEmail,
	credentials.FieldPassword,
}

type signUpModel struct {
	flows      *flow.Flows
	focusIndex int
	inputs     []textinput.Model
	fieldErrs  map[credentials.Field]string
	submitting bool
	keys       formKeyMap
}

func newSignUpModel(flows *flow.Flows) *signUpModel {
	m := &signUpModel{
		flows:     flows,
		inputs:    make([]textinput.Model, len(signUpFields)),
		fieldErrs: make(map[credentials.Field]string),
		keys:      newFormKeyMap("sign in"),
	}

	for i, field := range signUpFields {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 64

		switch field {
		case credentials.FieldName:
			t.Placeholder = "Name"
		case credentials.FieldEmail:
			t.Placeholder = "Email (@gmail.com)"
		case credentials.FieldPassword:
			t.Placeholder = "Password"
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}

		m.inputs[i] = t
	}

	m.setFocus(0)
	return m
}

func (m *signUpModel) form() credentials.SignUp {
	return credentials.SignUp{
		Name:     strings.TrimSpace(m.inputs[0].Value()),
		Email:    strings.TrimSpace(m.inputs[1].Value()),
		Password: m.inputs[2].Value(),
	}
}

func (m *signUpModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case signUpDoneMsg:
		m.submitting = false
		var fieldErrs credentials.FieldErrors
		if errors.As(msg.err, &fieldErrs) {
			m.fieldErrs = fieldErrs
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.toggle):
			return navigate(flow.RouteSignIn)

		case key.Matches(msg, m.keys.submit) && m.focusIndex == len(m.inputs):
			return m.submit()

		case key.Matches(msg, m.keys.submit), key.Matches(msg, m.keys.next):
			return m.setFocus(m.focusIndex + 1)

		case key.Matches(msg, m.keys.prev):
			return m.setFocus(m.focusIndex - 1)
		}
	}

	cmd := m.updateInputs(msg)
	if _, ok := msg.(tea.KeyMsg); ok && m.focusIndex < len(m.inputs) {
		field := signUpFields[m.focusIndex]
		m.setFieldError(field, credentials.ValidateField(field, m.inputs[m.focusIndex].Value(), credentials.OnChange))
	}
	return cmd
}

func (m *signUpModel) setFieldError(field credentials.Field, msg string) {
	if msg == "" {
		delete(m.fieldErrs, field)
		return
	}
	m.fieldErrs[field] = msg
}

func (m *signUpModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	form := m.form()
	if errs := credentials.ValidateSignUp(form); errs != nil {
		m.fieldErrs = errs
		m.flows.Inline.Clear()
		return nil
	}

	m.fieldErrs = make(map[credentials.Field]string)
	m.submitting = true
	flows := m.flows
	return func() tea.Msg {
		return signUpDoneMsg{err: flows.SignUp(context.Background(), form)}
	}
}

func (m *signUpModel) setFocus(index int) tea.Cmd {
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

func (m *signUpModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *signUpModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sign Up"))
	b.WriteString("\n\n")

	for i, field := range signUpFields {
		b.WriteString(m.inputs[i].View())
		if msg, ok := m.fieldErrs[field]; ok {
			b.WriteRune('\n')
			b.WriteString(fieldErrorStyle.Render(msg))
		}
		if i < len(m.inputs)-1 {
			b.WriteRune('\n')
		}
	}

	label := "[ Sign Up ]"
	if m.submitting {
		label = "[ Signing up... ]"
	}
	button := blurredButton(label)
	if m.focusIndex == len(m.inputs) {
		button = focusedButton(label)
	}
	fmt.Fprintf(&b, "\n\n%s\n", button)

	if msg, ok := m.flows.Inline.Current(); ok {
		b.WriteRune('\n')
		b.WriteString(fieldErrorStyle.Render(msg.Text))
		b.WriteRune('\n')
	}

	b.WriteRune('\n')
	b.WriteString(helpStyle.Render(helpLine(m.keys.next, m.keys.submit, m.keys.toggle)))

	return b.String()
}

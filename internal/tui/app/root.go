package app

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Paintersrp/noted/internal/feedback"
	"github.com/Paintersrp/noted/internal/flow"
	"github.com/Paintersrp/noted/internal/guard"
	"github.com/Paintersrp/noted/internal/logging"
	"github.com/Paintersrp/noted/internal/state"
)

type Options struct {
	// Start is the first surface shown. The notes surface redirects to
	// sign-in when there is no session.
	Start flow.Route
	// QuitOn ends the program instead of showing these routes, so a single
	// form can run on its own.
	QuitOn []flow.Route
	// Clock drives toast expiry; nil uses the real clock.
	Clock feedback.Clock
}

// poster delivers messages produced off the Update loop: timer expiry,
// session changes and guard decisions.
type poster struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (p *poster) set(send func(tea.Msg)) {
	p.mu.Lock()
	p.send = send
	p.mu.Unlock()
}

func (p *poster) post(msg tea.Msg) {
	p.mu.Lock()
	send := p.send
	p.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

type RootModel struct {
	state  *state.State
	flows  *flow.Flows
	guard  *guard.Guard
	logger *zap.Logger
	poster *poster

	route  flow.Route
	quitOn map[flow.Route]bool
	quit   bool

	signIn *signInModel
	signUp *signUpModel
	notes  *notesModel

	keys   rootKeyMap
	width  int
	height int
}

func NewRootModel(s *state.State, opts Options) *RootModel {
	clock := opts.Clock
	if clock == nil {
		clock = feedback.RealClock
	}

	m := &RootModel{
		state:  s,
		logger: s.Logger,
		poster: &poster{},
		route:  opts.Start,
		quitOn: make(map[flow.Route]bool, len(opts.QuitOn)),
		keys:   newRootKeyMap(),
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	for _, r := range opts.QuitOn {
		m.quitOn[r] = true
	}

	m.flows = s.NewFlows(m, clock)
	m.flows.Toast.OnChange(func() { m.poster.post(feedbackMsg{}) })
	m.flows.Inline.OnChange(func() { m.poster.post(feedbackMsg{}) })

	m.guard = guard.New(s.Sessions,
		func() { m.poster.post(navigateMsg{route: flow.RouteSignIn}) },
		func() { m.poster.post(fetchNotesMsg{}) },
	)

	m.signIn = newSignInModel(m.flows)
	m.signUp = newSignUpModel(m.flows)
	m.notes = newNotesModel(s.Editor, s.Renderer, s.Config.Render.WordWrap, m.logger.Named("notes"))
	return m
}

// SetSender connects the model to a running program. Messages are sent from
// their own goroutine so a post made during Update cannot block the loop.
func (m *RootModel) SetSender(send func(tea.Msg)) {
	m.poster.set(func(msg tea.Msg) { go send(msg) })
}

// Navigate implements flow.Navigator. It may be called from any goroutine.
func (m *RootModel) Navigate(r flow.Route) {
	m.poster.post(navigateMsg{route: r, followUp: true})
}

func (m *RootModel) Route() flow.Route {
	return m.route
}

func (m *RootModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.enter(m.route), m.state.Watcher.Start())
}

// enter switches surfaces. Leaving the notes surface releases its guard;
// entering it runs the guard before anything is fetched.
func (m *RootModel) enter(r flow.Route) tea.Cmd {
	if m.route == flow.RouteNotes && r != flow.RouteNotes {
		m.guard.Leave()
	}
	m.route = r
	m.logger.Debug("navigate", zap.String(logging.FieldRoute, r.String()))

	if m.quitOn[r] {
		m.quit = true
		return tea.Quit
	}

	switch r {
	case flow.RouteSignIn:
		m.signIn = newSignInModel(m.flows)
	case flow.RouteSignUp:
		m.flows.Inline.Clear()
		m.signUp = newSignUpModel(m.flows)
	case flow.RouteNotes:
		m.notes.editor.Reset()
		m.notes.syncInputs()
		m.notes.setSize(m.width, m.height)
		m.guard.Enter()
		return m.notes.setFocus(focusList)
	}
	return nil
}

func (m *RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notes.setSize(msg.Width, msg.Height)
		return m, nil

	case navigateMsg:
		if msg.route == m.route {
			return m, nil
		}
		if !msg.followUp {
			m.flows.Toast.CancelFollowUp()
		}
		return m, m.enter(msg.route)

	case feedbackMsg:
		return m, nil

	case fetchNotesMsg:
		if m.route != flow.RouteNotes {
			return m, nil
		}
		return m, m.notes.fetch()

	case copiedMsg:
		if msg.err != nil {
			m.flows.Toast.Post("Copy failed: "+msg.err.Error(), feedback.Error, m.state.Config.Feedback.Copy)
		} else {
			m.flows.Toast.Post("Copied \""+msg.title+"\" to clipboard", feedback.Success, m.state.Config.Feedback.Copy)
		}
		return m, nil

	case state.SessionFileChangedMsg, state.SessionWatcherErrMsg:
		// the store already notified subscribers; keep listening
		return m, m.state.Watcher.Start()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.shutdown()
			return m, tea.Quit
		case key.Matches(msg, m.keys.logout) && m.route == flow.RouteNotes:
			_ = m.flows.Logout()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.route {
	case flow.RouteSignIn:
		cmd = m.signIn.Update(msg)
	case flow.RouteSignUp:
		cmd = m.signUp.Update(msg)
	case flow.RouteNotes:
		cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m *RootModel) shutdown() {
	m.guard.Leave()
	m.flows.Teardown()
}

func (m *RootModel) View() string {
	if m.quit {
		return ""
	}

	var content string
	switch m.route {
	case flow.RouteSignIn:
		content = m.signIn.View()
	case flow.RouteSignUp:
		content = m.signUp.View()
	case flow.RouteNotes:
		content = m.notes.View()
	}

	sections := []string{content}
	if msg, ok := m.flows.Toast.Current(); ok {
		sections = append(sections, renderToast(msg))
	}
	sections = append(sections, renderHelpWithinWidth(m.width, helpLine(m.keys.quit, m.keys.logout)))

	return appStyle.Render(strings.Join(sections, "\n\n"))
}

// Run shows the TUI until the user quits or a QuitOn route is reached.
func Run(s *state.State, opts Options) (*RootModel, error) {
	m := NewRootModel(s, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.SetSender(p.Send)

	_, err := p.Run()
	m.shutdown()
	return m, err
}

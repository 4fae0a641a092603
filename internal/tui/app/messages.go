package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/flow"
)

// navigateMsg switches surfaces. followUp marks the navigation a toast runs
// when it expires; any other switch cancels such a pending one.
type navigateMsg struct {
	route    flow.Route
	followUp bool
}

// feedbackMsg only forces a repaint after a toast changed off the Update loop.
type feedbackMsg struct{}

type fetchNotesMsg struct{}

type notesLoadedMsg struct {
	err error
}

type savedMsg struct {
	saved bool
	err   error
}

type deletedMsg struct {
	id  api.ID
	err error
}

type copiedMsg struct {
	title string
	err   error
}

type signInDoneMsg struct {
	err error
}

type signUpDoneMsg struct {
	err error
}

func navigate(r flow.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: r} }
}

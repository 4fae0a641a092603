package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type rootKeyMap struct {
	quit   key.Binding
	logout key.Binding
}

func newRootKeyMap() rootKeyMap {
	return rootKeyMap{
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
	}
}

type formKeyMap struct {
	next   key.Binding
	prev   key.Binding
	submit key.Binding
	toggle key.Binding
}

func newFormKeyMap(switchHelp string) formKeyMap {
	return formKeyMap{
		next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next"),
		),
		prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		toggle: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", switchHelp),
		),
	}
}

type notesKeyMap struct {
	save          key.Binding
	create        key.Binding
	nextFocus     key.Binding
	prevFocus     key.Binding
	openNote      key.Binding
	delete        key.Binding
	copy          key.Binding
	refresh       key.Binding
	togglePreview key.Binding
	backToList    key.Binding
}

func newNotesKeyMap() notesKeyMap {
	return notesKeyMap{
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		create: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new"),
		),
		nextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		prevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		openNote: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "edit"),
		),
		delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		togglePreview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "preview"),
		),
		backToList: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "list"),
		),
	}
}

func (k notesKeyMap) shortHelp() []key.Binding {
	return []key.Binding{
		k.save,
		k.create,
		k.nextFocus,
		k.openNote,
		k.delete,
		k.copy,
		k.refresh,
		k.togglePreview,
	}
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

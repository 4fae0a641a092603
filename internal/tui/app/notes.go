package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/editor"
	"github.com/Paintersrp/noted/internal/logging"
	"github.com/Paintersrp/noted/internal/markup"
)

const snippetLength = 60

type focusArea int

const (
	focusList focusArea = iota
	focusTitle
	focusContent
)

var (
	defaultClipboard = clipboard.WriteAll
	// writeClipboard is swapped in tests; there is no clipboard in CI.
	writeClipboard = defaultClipboard
)

type noteItem struct {
	note api.Note
}

func (i noteItem) Title() string {
	if strings.TrimSpace(i.note.Title) == "" {
		return "(untitled)"
	}
	return i.note.Title
}

func (i noteItem) Description() string {
	return markup.Snippet(i.note.Content, snippetLength)
}

func (i noteItem) FilterValue() string { return i.note.Title }

type notesModel struct {
	editor   *editor.Session
	renderer *markup.Renderer
	logger   *zap.Logger
	wordWrap int

	list        list.Model
	title       textinput.Model
	content     textarea.Model
	focus       focusArea
	keys        notesKeyMap
	showPreview bool
	loading     bool
	width       int
	height      int
}

func newNotesModel(ed *editor.Session, renderer *markup.Renderer, wordWrap int, logger *zap.Logger) *notesModel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Notes"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Cursor.Style = cursorStyle

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.CharLimit = 0
	content.ShowLineNumbers = false

	return &notesModel{
		editor:   ed,
		renderer: renderer,
		logger:   logger,
		wordWrap: wordWrap,
		list:     l,
		title:    title,
		content:  content,
		keys:     newNotesKeyMap(),
	}
}

func (m *notesModel) setSize(width, height int) {
	m.width, m.height = width, height

	listWidth := width / 3
	editorWidth := width - listWidth - 4
	if editorWidth < 20 {
		editorWidth = 20
	}
	m.list.SetSize(listWidth, height-4)
	m.title.Width = editorWidth - 4
	m.content.SetWidth(editorWidth)

	contentHeight := height - 10
	if m.showPreview {
		contentHeight /= 2
	}
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.content.SetHeight(contentHeight)
}

func (m *notesModel) fetch() tea.Cmd {
	m.loading = true
	ed := m.editor
	return func() tea.Msg {
		return notesLoadedMsg{err: ed.Refresh(context.Background())}
	}
}

func (m *notesModel) save() tea.Cmd {
	ed := m.editor
	return func() tea.Msg {
		saved, err := ed.Save(context.Background())
		return savedMsg{saved: saved, err: err}
	}
}

func (m *notesModel) deleteSelected() tea.Cmd {
	note, ok := m.selected()
	if !ok {
		return nil
	}
	ed := m.editor
	return func() tea.Msg {
		return deletedMsg{id: note.ID, err: ed.Delete(context.Background(), note.ID)}
	}
}

func (m *notesModel) copySelected() tea.Cmd {
	note, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return copiedMsg{title: note.Title, err: writeClipboard(markup.PlainText(note.Content))}
	}
}

func (m *notesModel) selected() (api.Note, bool) {
	item, ok := m.list.SelectedItem().(noteItem)
	if !ok {
		return api.Note{}, false
	}
	return item.note, true
}

// syncList rebuilds the list from the editor cache.
func (m *notesModel) syncList() tea.Cmd {
	notes := m.editor.Notes()
	items := make([]list.Item, len(notes))
	for i, n := range notes {
		items[i] = noteItem{note: n}
	}
	return m.list.SetItems(items)
}

// syncInputs copies the draft into the inputs after the editor changed it.
func (m *notesModel) syncInputs() {
	d := m.editor.Draft()
	if m.title.Value() != d.Title {
		m.title.SetValue(d.Title)
	}
	if m.content.Value() != d.Content {
		m.content.SetValue(d.Content)
	}
}

func (m *notesModel) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.content.Blur()
	m.title.PromptStyle = noStyle
	m.title.TextStyle = noStyle

	switch f {
	case focusTitle:
		m.title.PromptStyle = focusedStyle
		m.title.TextStyle = focusedStyle
		return m.title.Focus()
	case focusContent:
		return m.content.Focus()
	}
	return nil
}

func (m *notesModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		m.loading = false
		return m.syncList()

	case savedMsg:
		if msg.err != nil {
			m.logger.Warn("save failed", zap.String(logging.FieldAction, "save"), zap.Error(msg.err))
			return nil
		}
		if !msg.saved {
			return nil
		}
		m.syncInputs()
		return m.syncList()

	case deletedMsg:
		if msg.err != nil {
			m.logger.Warn("delete failed",
				zap.String(logging.FieldAction, "delete"),
				zap.String(logging.FieldNoteID, msg.id.String()),
				zap.Error(msg.err),
			)
			return nil
		}
		m.syncInputs()
		return m.syncList()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.save):
			return m.save()

		case key.Matches(msg, m.keys.create):
			m.editor.StartNew()
			m.syncInputs()
			return m.setFocus(focusTitle)

		case key.Matches(msg, m.keys.togglePreview):
			m.showPreview = !m.showPreview
			m.setSize(m.width, m.height)
			return nil

		case key.Matches(msg, m.keys.nextFocus):
			return m.setFocus((m.focus + 1) % 3)

		case key.Matches(msg, m.keys.prevFocus):
			return m.setFocus((m.focus + 2) % 3)

		case key.Matches(msg, m.keys.backToList) && m.focus != focusList:
			return m.setFocus(focusList)
		}

		if m.focus == focusList {
			return m.updateList(msg)
		}
	}

	return m.updateInputs(msg)
}

func (m *notesModel) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.openNote):
		note, ok := m.selected()
		if !ok {
			return nil
		}
		m.editor.SelectForEdit(note)
		m.syncInputs()
		return m.setFocus(focusTitle)

	case key.Matches(msg, m.keys.delete):
		return m.deleteSelected()

	case key.Matches(msg, m.keys.copy):
		return m.copySelected()

	case key.Matches(msg, m.keys.refresh):
		return m.fetch()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *notesModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
		m.editor.SetTitle(m.title.Value())
	case focusContent:
		m.content, cmd = m.content.Update(msg)
		m.editor.SetContent(m.content.Value())
	}
	return cmd
}

func (m *notesModel) View() string {
	draft := m.editor.Draft()

	listView := m.list.View()
	if m.loading && len(m.list.Items()) == 0 {
		listView = m.list.Styles.Title.Render(m.list.Title) + "\n\n  Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(draft.Heading()))
	b.WriteString("\n\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString(m.content.View())

	button := blurredButton("[ " + draft.SaveLabel() + " ]")
	if !draft.Empty() {
		button = focusedButton("[ " + draft.SaveLabel() + " ]")
	}
	fmt.Fprintf(&b, "\n\n%s", button)

	if m.showPreview {
		width := m.wordWrap
		if m.content.Width() > 0 && m.content.Width() < width {
			width = m.content.Width()
		}
		b.WriteString(previewStyle.Render(m.renderer.Render(draft.Content, width)))
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listStyle.Render(listView),
		editorStyle.Render(b.String()),
	)

	return body + "\n" + renderHelpWithinWidth(m.width, helpLine(m.keys.shortHelp()...))
}

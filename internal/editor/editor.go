// Package editor holds the note draft being composed and reconciles it with the
// server on save and delete.
package editor

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/logging"
)

type Mode int

const (
	ModeCreating Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "creating"
}

// Draft is the in-progress note. Mode is ModeEditing exactly when TargetID is
// set. Content always holds the full markup.
type Draft struct {
	Title    string
	Content  string
	TargetID api.ID
	Mode     Mode
}

func (d Draft) Empty() bool {
	return d.Title == "" && d.Content == ""
}

func (d Draft) Heading() string {
	if d.Mode == ModeEditing {
		return "Edit Note"
	}
	return "Create a New Note"
}

func (d Draft) SaveLabel() string {
	if d.Mode == ModeEditing {
		return "Update Note"
	}
	return "Save Note"
}

type NoteService interface {
	ListNotes(ctx context.Context) ([]api.Note, error)
	CreateNote(ctx context.Context, in api.NoteInput) (api.ID, error)
	UpdateNote(ctx context.Context, id api.ID, in api.NoteInput) error
	DeleteNote(ctx context.Context, id api.ID) error
}

type Session struct {
	mu     sync.Mutex
	notes  NoteService
	logger *zap.Logger
	draft  Draft
	cache  []api.Note
}

func New(notes NoteService, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{notes: notes, logger: logger}
}

func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Notes returns a copy of the last fetched list, in server order.
func (s *Session) Notes() []api.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Note, len(s.cache))
	copy(out, s.cache)
	return out
}

// StartNew discards the draft and starts composing a new note.
func (s *Session) StartNew() {
	s.mu.Lock()
	s.draft = Draft{}
	s.mu.Unlock()
}

// SelectForEdit binds the draft to note.
func (s *Session) SelectForEdit(note api.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note.ID == "" {
		s.draft = Draft{Title: note.Title, Content: note.Content}
		return
	}
	s.draft = Draft{
		Title:    note.Title,
		Content:  note.Content,
		TargetID: note.ID,
		Mode:     ModeEditing,
	}
}

func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	s.draft.Title = title
	s.mu.Unlock()
}

func (s *Session) SetContent(content string) {
	s.mu.Lock()
	s.draft.Content = content
	s.mu.Unlock()
}

// Save creates or updates the note behind the draft. It reports false without
// touching the network when the draft is empty. On failure the draft is kept
// and the error is logged and returned; callers show nothing to the user.
func (s *Session) Save(ctx context.Context) (bool, error) {
	draft := s.Draft()
	if draft.Empty() {
		return false, nil
	}

	in := api.NoteInput{Title: draft.Title, Content: draft.Content}
	var err error
	action := "create"
	if draft.Mode == ModeEditing {
		action = "update"
		err = s.notes.UpdateNote(ctx, draft.TargetID, in)
	} else {
		_, err = s.notes.CreateNote(ctx, in)
	}
	if err != nil {
		s.logger.Error("save note failed",
			zap.String(logging.FieldAction, action),
			zap.String(logging.FieldNoteID, draft.TargetID.String()),
			zap.Error(err),
		)
		return false, err
	}

	s.StartNew()
	_ = s.Refresh(ctx)
	return true, nil
}

// Delete removes id on the server whatever the draft holds. If the draft is
// editing that note it is reset.
func (s *Session) Delete(ctx context.Context, id api.ID) error {
	if err := s.notes.DeleteNote(ctx, id); err != nil {
		s.logger.Error("delete note failed",
			zap.String(logging.FieldNoteID, id.String()),
			zap.Error(err),
		)
		return err
	}

	_ = s.Refresh(ctx)

	s.mu.Lock()
	if s.draft.Mode == ModeEditing && s.draft.TargetID == id {
		s.draft = Draft{}
	}
	s.mu.Unlock()
	return nil
}

// Refresh replaces the cached list with a full fetch. The cache is left alone
// when the fetch fails.
func (s *Session) Refresh(ctx context.Context) error {
	notes, err := s.notes.ListNotes(ctx)
	if err != nil {
		s.logger.Error("fetch notes failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.cache = notes
	s.mu.Unlock()
	return nil
}

// Find returns the cached note with id.
func (s *Session) Find(id api.ID) (api.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.cache {
		if n.ID == id {
			return n, true
		}
	}
	return api.Note{}, false
}

// Reset drops the draft and the cached list, for when the session ends.
func (s *Session) Reset() {
	s.mu.Lock()
	s.draft = Draft{}
	s.cache = nil
	s.mu.Unlock()
}

package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/fzf"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil/cmdtest"
)

func stubPick(t *testing.T, fn func([]api.Note) (api.Note, error)) {
	prev := pick
	pick = func(_ *state.State, notes []api.Note) (api.Note, error) { return fn(notes) }
	t.Cleanup(func() { pick = prev })
}

func TestEditPicksNoteWithoutID(t *testing.T) {
	cmdtest.Interactive(t, true)
	var offered int
	stubPick(t, func(notes []api.Note) (api.Note, error) {
		offered = len(notes)
		return notes[len(notes)-1], nil
	})
	srv := cmdtest.NewServer(t,
		cmdtest.Note{ID: 1, Title: "Groceries"},
		cmdtest.Note{ID: 2, Title: "Ideas", Content: "<p>old</p>"},
	)
	s := cmdtest.NewState(t, srv.URL, "tok")

	_, err := cmdtest.Run(NewCmdEdit(s), "--content", "<p>new</p>")
	require.NoError(t, err)
	assert.Equal(t, 2, offered)

	stored := srv.Notes()
	assert.Equal(t, "Ideas", stored[1].Title)
	assert.Equal(t, "<p>new</p>", stored[1].Content)
	assert.Zero(t, srv.Updates(1))
}

func TestEditPickCancelled(t *testing.T) {
	cmdtest.Interactive(t, true)
	stubPick(t, func([]api.Note) (api.Note, error) { return api.Note{}, fzf.ErrNoSelection })
	srv := cmdtest.NewServer(t, cmdtest.Note{ID: 1, Title: "Groceries"})
	s := cmdtest.NewState(t, srv.URL, "tok")

	_, err := cmdtest.Run(NewCmdEdit(s), "-t", "x")
	assert.ErrorIs(t, err, fzf.ErrNoSelection)
}

func TestEditWithoutIDOutsideTerminal(t *testing.T) {
	cmdtest.Interactive(t, false)
	srv := cmdtest.NewServer(t, cmdtest.Note{ID: 1, Title: "Groceries"})
	s := cmdtest.NewState(t, srv.URL, "tok")

	_, err := cmdtest.Run(NewCmdEdit(s), "-t", "x")
	assert.Error(t, err)
	assert.Zero(t, srv.Updates(1))
}

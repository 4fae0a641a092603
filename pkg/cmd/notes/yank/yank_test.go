package yank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/noted/pkg/cmd/cmdutil/cmdtest"
)

func TestCopyWritesPlainText(t *testing.T) {
	var copied string
	prev := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = prev })

	srv := cmdtest.NewServer(t, cmdtest.Note{ID: 3, Title: "Groceries", Content: "<p>milk <i>and</i> eggs</p>"})
	s := cmdtest.NewState(t, srv.URL, "tok")

	out, err := cmdtest.Run(NewCmdCopy(s), "3")
	require.NoError(t, err)
	assert.Equal(t, "milk and eggs", copied)
	assert.Contains(t, out, `Copied "Groceries" to clipboard.`)
}

func TestCopyMissingNote(t *testing.T) {
	srv := cmdtest.NewServer(t)
	s := cmdtest.NewState(t, srv.URL, "tok")

	_, err := cmdtest.Run(NewCmdCopy(s), "3")
	assert.Error(t, err)
}

package yank

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/markup"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func NewCmdCopy(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy <id>",
		Aliases: []string{"yank", "y"},
		Short:   "Copy a note's text to the clipboard",
		Long: heredoc.Doc(`
			Copy the plain text of a note, with markup removed, to the system
			clipboard.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.RequireSession(s); err != nil {
				return err
			}

			note, err := s.API.GetNote(cmd.Context(), api.ID(args[0]))
			if err != nil {
				return err
			}

			if err := writeClipboard(markup.PlainText(note.Content)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Copied %q to clipboard.\n", note.Title)
			return nil
		},
	}

	cmd.SilenceUsage = true
	return cmd
}

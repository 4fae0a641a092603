package edit

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/fzf"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noted/pkg/flags"
)

// pick is replaced in tests.
var pick = func(s *state.State, notes []api.Note) (api.Note, error) {
	return fzf.NewNoteFinder(notes, s.Renderer, "Select a note to edit").Run("")
}

func NewCmdEdit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Update a note's title or content",
		Long: heredoc.Doc(`
			Replace the title and/or content of a note. Fields that are not
			given keep their current value when the note is in your list.
			Without an id a fuzzy finder lets you pick the note.
		`),
		Example: heredoc.Doc(`
			noted notes edit 12 --title "Groceries (weekend)"
			noted notes edit --file notes.md
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.RequireSession(s); err != nil {
				return err
			}

			title, hasTitle := flags.HandleTitle(cmd)
			content, hasContent, err := flags.HandleContent(cmd)
			if err != nil {
				return err
			}
			if !hasTitle && !hasContent {
				return errors.New("nothing to change: pass --title, --content or --file")
			}

			if err := s.Editor.Refresh(cmd.Context()); err != nil {
				return err
			}

			var note api.Note
			if len(args) == 1 {
				id := api.ID(args[0])
				cached, ok := s.Editor.Find(id)
				if ok {
					note = cached
				} else {
					// an update replaces both fields, so load the one not given
					note, err = s.API.GetNote(cmd.Context(), id)
					if err != nil {
						return err
					}
					note.ID = id
				}
			} else {
				if !cmdutil.IsInteractive() {
					return errors.New("an id is required when not running in a terminal")
				}
				note, err = pick(s, s.Editor.Notes())
				if err != nil {
					return err
				}
			}

			s.Editor.SelectForEdit(note)
			if hasTitle {
				s.Editor.SetTitle(title)
			}
			if hasContent {
				s.Editor.SetContent(content)
			}

			saved, err := s.Editor.Save(cmd.Context())
			if err != nil {
				return err
			}
			if !saved {
				return errors.New("nothing to save: title and content are both empty")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Note updated.")
			return nil
		},
	}

	cmd.SilenceUsage = true
	flags.AddTitle(cmd)
	flags.AddContent(cmd)

	return cmd
}

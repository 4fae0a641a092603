package notes

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/flow"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/internal/tui/app"
	"github.com/Paintersrp/noted/pkg/cmd/notes/edit"
	"github.com/Paintersrp/noted/pkg/cmd/notes/list"
	"github.com/Paintersrp/noted/pkg/cmd/notes/new"
	"github.com/Paintersrp/noted/pkg/cmd/notes/remove"
	"github.com/Paintersrp/noted/pkg/cmd/notes/yank"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"n"},
		Short:   "List, create, edit and delete notes",
		Long: heredoc.Doc(`
			Work with the notes stored on the server. Without a subcommand the
			notes screen is opened.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.Run(s, app.Options{Start: flow.RouteNotes})
			return err
		},
	}

	cmd.AddCommand(
		list.NewCmdList(s),
		new.NewCmdNew(s),
		edit.NewCmdEdit(s),
		remove.NewCmdDelete(s),
		yank.NewCmdCopy(s),
	)

	return cmd
}

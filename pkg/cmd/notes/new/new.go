package new

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noted/pkg/flags"
)

func NewCmdNew(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new",
		Aliases: []string{"create"},
		Short:   "Create a note",
		Long: heredoc.Doc(`
			Create a note from flags. Markdown files given with --file are
			converted to HTML so they display like notes written in the app.
		`),
		Example: heredoc.Doc(`
			noted notes new --title Groceries --content "<p>milk</p>"
			noted notes new --title Roadmap --file roadmap.md
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.RequireSession(s); err != nil {
				return err
			}

			title, _ := flags.HandleTitle(cmd)
			content, _, err := flags.HandleContent(cmd)
			if err != nil {
				return err
			}

			s.Editor.StartNew()
			s.Editor.SetTitle(title)
			s.Editor.SetContent(content)

			saved, err := s.Editor.Save(cmd.Context())
			if err != nil {
				return err
			}
			if !saved {
				return errors.New("nothing to save: title and content are both empty")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Note saved.")
			return nil
		},
	}

	cmd.SilenceUsage = true
	flags.AddTitle(cmd)
	flags.AddContent(cmd)

	return cmd
}

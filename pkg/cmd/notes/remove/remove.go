package remove

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noted/pkg/flags"
)

// confirm is replaced in tests.
var confirm = func(prompt string) (bool, error) {
	return confirmation.New(prompt, confirmation.No).RunPrompt()
}

func NewCmdDelete(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Long: heredoc.Doc(`
			Delete a note by id. You are asked to confirm unless --yes is given;
			outside a terminal --yes is required.
		`),
		Example: heredoc.Doc(`
			noted notes delete 12
			noted notes delete 12 --yes
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.RequireSession(s); err != nil {
				return err
			}
			id := api.ID(args[0])

			if !flags.HandleYes(cmd) {
				if !cmdutil.IsInteractive() {
					return errors.New("refusing to delete without --yes outside a terminal")
				}

				label := id.String()
				if err := s.Editor.Refresh(cmd.Context()); err == nil {
					if note, ok := s.Editor.Find(id); ok && note.Title != "" {
						label = fmt.Sprintf("%q", note.Title)
					}
				}

				ok, err := confirm(fmt.Sprintf("Delete note %s?", label))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := s.Editor.Delete(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Note deleted.")
			return nil
		},
	}

	cmd.SilenceUsage = true
	flags.AddYes(cmd)

	return cmd
}

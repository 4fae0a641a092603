package list

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/markup"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
)

const snippetLength = 48

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your notes",
		Long: heredoc.Doc(`
			Fetch every note and print its id, title and a plain-text preview,
			in the order the server returns them.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.RequireSession(s); err != nil {
				return err
			}
			if err := s.Editor.Refresh(cmd.Context()); err != nil {
				return err
			}

			notes := s.Editor.Notes()
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes yet. Create one with `noted notes new`.")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"ID", "Title", "Preview", "Updated"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			for _, n := range notes {
				updated := ""
				if !n.LastUpdate.IsZero() {
					updated = n.LastUpdate.Local().Format("2006-01-02 15:04")
				}
				table.Append([]string{
					n.ID.String(),
					n.Title,
					markup.Snippet(n.Content, snippetLength),
					updated,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.SilenceUsage = true
	return cmd
}

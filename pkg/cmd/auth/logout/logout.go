package logout

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
)

func NewCmdLogout(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Logout of your account",
		Long: heredoc.Doc(`
			Remove the stored token and profile. Any open noted TUI picks up the
			change and returns to the sign-in form.
		`),
		Example: heredoc.Doc(`
			noted auth logout
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			flows := cmdutil.Flows(s)
			err := flows.Logout()
			cmdutil.PrintFeedback(cmd.OutOrStdout(), flows.Toast)
			return err
		},
	}

	return cmd
}

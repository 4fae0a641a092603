package login

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/flow"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/internal/tui/app"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noted/pkg/flags"
)

// runTUI is replaced in tests.
var runTUI = app.Run

func NewCmdLogin(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Aliases: []string{"l"},
		Short:   "Log in to your account",
		Long: heredoc.Doc(`
			Log in to your account with your email and password.
			Upon successful login, your token is stored in the session file
			(~/.noted/session.yaml by default).

			Without --email and --password the sign-in form is shown.
		`),
		Example: heredoc.Doc(`
			noted auth login
			noted auth login --email ana@gmail.com --password hunter22
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if s.Sessions.Current().Authenticated() {
				fmt.Fprintln(out,
					"You are already authenticated. Please logout with the logout command if you'd like to change users.",
				)
				return nil
			}

			email := flags.HandleString(cmd, "email")
			password := flags.HandleString(cmd, "password")

			if email == "" && password == "" && cmdutil.IsInteractive() {
				if _, err := runTUI(s, app.Options{
					Start:  flow.RouteSignIn,
					QuitOn: []flow.Route{flow.RouteNotes, flow.RouteSignUp},
				}); err != nil {
					return err
				}
				if s.Sessions.Current().Authenticated() {
					fmt.Fprintln(out, flow.MsgSignedIn)
				}
				return nil
			}

			flows := cmdutil.Flows(s)
			err := flows.SignIn(cmd.Context(), email, password)
			cmdutil.PrintFeedback(out, flows.Toast)
			return err
		},
	}

	cmd.SilenceUsage = true
	flags.AddEmail(cmd)
	flags.AddPassword(cmd)

	return cmd
}

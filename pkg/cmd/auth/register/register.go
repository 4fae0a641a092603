package register

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/credentials"
	"github.com/Paintersrp/noted/internal/flow"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/internal/tui/app"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
	"github.com/Paintersrp/noted/pkg/flags"
)

var runTUI = app.Run

func NewCmdRegister(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "register",
		Aliases: []string{"signup"},
		Short:   "Create a new account",
		Long: heredoc.Doc(`
			Create a new account. Emails must end with @gmail.com and passwords
			must be at least 7 characters.

			Without flags the sign-up form is shown.
		`),
		Example: heredoc.Doc(`
			noted auth register
			noted auth register --name Ana --email ana@gmail.com --password abcdefg
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			form := credentials.SignUp{
				Name:     flags.HandleString(cmd, "name"),
				Email:    flags.HandleString(cmd, "email"),
				Password: flags.HandleString(cmd, "password"),
			}

			if form == (credentials.SignUp{}) && cmdutil.IsInteractive() {
				_, err := runTUI(s, app.Options{
					Start:  flow.RouteSignUp,
					QuitOn: []flow.Route{flow.RouteSignIn},
				})
				return err
			}

			flows := cmdutil.Flows(s)
			err := flows.SignUp(cmd.Context(), form)

			var fieldErrs credentials.FieldErrors
			if errors.As(err, &fieldErrs) {
				for _, f := range []credentials.Field{credentials.FieldName, credentials.FieldEmail, credentials.FieldPassword} {
					if msg, ok := fieldErrs[f]; ok {
						fmt.Fprintf(out, "%s: %s\n", f, msg)
					}
				}
				return errors.New("registration form is invalid")
			}

			if err != nil {
				msg, _ := flows.Inline.Current()
				flows.Teardown()
				return errors.New(msg.Text)
			}

			cmdutil.PrintFeedback(out, flows.Toast)
			return nil
		},
	}

	cmd.SilenceUsage = true
	flags.AddName(cmd)
	flags.AddEmail(cmd)
	flags.AddPassword(cmd)

	return cmd
}

package auth

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/auth/login"
	"github.com/Paintersrp/noted/pkg/cmd/auth/logout"
	"github.com/Paintersrp/noted/pkg/cmd/auth/register"
	"github.com/Paintersrp/noted/pkg/cmd/auth/status"
)

func NewCmdAuth(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage your noted account session",
		Long: heredoc.Doc(`
			Sign in, create an account, sign out, or inspect the stored session.
			The session is kept in the session file from your config.
		`),
	}

	cmd.AddCommand(
		login.NewCmdLogin(s),
		register.NewCmdRegister(s),
		logout.NewCmdLogout(s),
		status.NewCmdStatus(s),
	)

	return cmd
}

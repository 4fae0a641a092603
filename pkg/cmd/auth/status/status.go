package status

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/pkg/cmd/cmdutil"
)

// now is replaced in tests.
var now = time.Now

func NewCmdStatus(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Long: heredoc.Doc(`
			Print who is signed in and when the token expires. The token is
			decoded locally and not checked against the server.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			current := s.Sessions.Current()
			if !current.Authenticated() {
				return cmdutil.ErrNotSignedIn
			}

			fmt.Fprintln(out, "Signed in")
			if u := current.User; u != nil {
				if u.Name != "" {
					fmt.Fprintf(out, "  name:    %s\n", u.Name)
				}
				if u.Email != "" {
					fmt.Fprintf(out, "  email:   %s\n", u.Email)
				}
			}

			claims, err := s.Sessions.Claims()
			if err != nil {
				fmt.Fprintln(out, "  token:   opaque")
				return nil
			}
			if claims.Subject != "" {
				fmt.Fprintf(out, "  subject: %s\n", claims.Subject)
			}
			if !claims.ExpiresAt.IsZero() {
				label := "expires"
				if claims.Expired(now()) {
					label = "expired"
				}
				fmt.Fprintf(out, "  %s: %s\n", label, claims.ExpiresAt.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.SilenceUsage = true
	return cmd
}

// Package cmdutil holds helpers shared by the noted subcommands.
package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/Paintersrp/noted/internal/feedback"
	"github.com/Paintersrp/noted/internal/flow"
	"github.com/Paintersrp/noted/internal/state"
)

var ErrNotSignedIn = errors.New("you are not signed in, run `noted auth login` first")

// IsInteractive reports whether prompts and TUIs can be shown. Tests replace it.
var IsInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// RequireSession fails when no token is stored.
func RequireSession(s *state.State) error {
	if !s.Sessions.Current().Authenticated() {
		return ErrNotSignedIn
	}
	return nil
}

// Flows builds flows for one-shot commands: there is nowhere to navigate, so
// route changes are dropped.
func Flows(s *state.State) *flow.Flows {
	return s.NewFlows(flow.NavigatorFunc(func(flow.Route) {}), feedback.RealClock)
}

// PrintFeedback writes the current message of c, if any, and clears it so no
// timer outlives the command.
func PrintFeedback(w io.Writer, c *feedback.Channel) {
	if msg, ok := c.Current(); ok {
		fmt.Fprintln(w, msg.Text)
	}
	c.Clear()
}

package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/noted/internal/config"
	"github.com/Paintersrp/noted/internal/constants"
	"github.com/Paintersrp/noted/internal/flow"
	"github.com/Paintersrp/noted/internal/state"
	"github.com/Paintersrp/noted/internal/tui/app"
	"github.com/Paintersrp/noted/pkg/cmd/auth"
	configcmd "github.com/Paintersrp/noted/pkg/cmd/config"
	"github.com/Paintersrp/noted/pkg/cmd/notes"
)

// NewCmdRoot builds the command tree around s. s is loaded once flags are
// parsed, before any command runs; a state that is already loaded is used as
// is.
func NewCmdRoot(s *state.State, v *viper.Viper) *cobra.Command {
	if v == nil {
		v = viper.GetViper()
	}
	var cfgFile string

	cmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Write and manage your notes from the terminal.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			A terminal client for your notes server. Sign in once and the
			session is kept between runs.

			Running noted without a command opens the notes screen, or the
			sign-in screen when no session is stored.
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if s.Loaded() {
				return nil
			}
			if err := config.LoadDotEnv("."); err != nil {
				return err
			}
			config.BindEnv(v)
			return s.Load(cfgFile, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.Run(s, app.Options{Start: flow.RouteNotes})
			return err
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.noted/cfg.yaml)")
	pf.String("api-url", "", "Base URL of the notes server")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	_ = v.BindPFlag("api_url", pf.Lookup("api-url"))
	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))

	cmd.AddCommand(
		auth.NewCmdAuth(s),
		notes.NewCmdNotes(s),
		configcmd.NewCmdConfig(s),
	)

	return cmd
}

package config

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	appconfig "github.com/Paintersrp/noted/internal/config"
	"github.com/Paintersrp/noted/internal/state"
)

func NewCmdConfig(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"settings"},
		Short:   "Show or initialize the configuration",
	}

	cmd.AddCommand(newCmdShow(s), newCmdInit(s))
	return cmd
}

func newCmdShow(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: heredoc.Doc(`
			Print the configuration after defaults, NOTED_* environment
			variables and flags have been applied.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", s.Config.GetConfigPath())
			fmt.Fprint(out, s.Config.String())
			return nil
		},
	}
}

func newCmdInit(s *state.State) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file filled with the defaults",
		Long: heredoc.Doc(`
			Write every setting with its default value to the config file so it
			can be edited by hand. An existing non-empty file is kept unless
			--force is given.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := s.Config.GetConfigPath()

			if info, err := os.Stat(path); err == nil && info.Size() > 0 && !force {
				return fmt.Errorf("%s already has settings, pass --force to overwrite", path)
			}

			if err := appconfig.DefaultAt(path).Save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.SilenceUsage = true
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

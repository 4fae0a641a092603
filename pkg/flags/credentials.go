package flags

import (
	"github.com/spf13/cobra"
)

func AddEmail(cmd *cobra.Command) {
	cmd.Flags().StringP("email", "e", "", "Account email")
}

func AddPassword(cmd *cobra.Command) {
	cmd.Flags().StringP("password", "p", "", "Account password")
}

func AddName(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "Display name for the new account")
}

// HandleString reads a string flag registered by one of the Add helpers.
func HandleString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return value
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mailpost version %s\n", app.version)
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", app.commit)
			fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", app.date)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	Limit int // newest-first cap, 0 shows everything
}

// NewHistoryCmd creates the history command.
func NewHistoryCmd(app *App) *cobra.Command {
	opts := HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the submission history",
		Long: `History lists past submissions, newest first. It is a local log of
what was handed to the mailer, not a delivery report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ShowHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Number of entries to show (0 for all)")

	return cmd
}

// ShowHistory prints the send history from the local index.
func (a *App) ShowHistory(cmd *cobra.Command, opts HistoryOptions) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.GetSends(context.Background(), opts.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No submissions recorded.")
		return nil
	}

	for _, rec := range records {
		line := fmt.Sprintf("%s  %q to %s",
			rec.SentAt.Local().Format("2006-01-02 15:04"), rec.Title, rec.Recipient)
		if rec.Converted {
			line += " (converted)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	return nil
}

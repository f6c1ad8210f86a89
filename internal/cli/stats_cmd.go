package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize activity time for a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := windowFromFlags(from, to)
			if err != nil {
				return err
			}
			stats, err := app.Activities.Stats(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			renderStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (default today)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (default tomorrow)")
	return cmd
}

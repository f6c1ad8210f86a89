package cli

import (
	"github.com/spf13/cobra"
)

func newConflictsCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List overlapping same-source activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := windowFromFlags(from, to)
			if err != nil {
				return err
			}
			conflicts, err := app.Activities.Conflicts(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			renderConflicts(cmd.OutOrStdout(), conflicts)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (default today)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (default tomorrow)")
	return cmd
}

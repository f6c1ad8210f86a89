package cli

import (
	"github.com/mgreco/tempus/internal/domain"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	var flagJSON bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search recent activities",
		Long: `Searches titles, category names, app names, and domains over a recent
lookback window: 30 days with no query, 90 days with one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			activities, err := app.Activities.SearchActivities(cmd.Context(), query, nil)
			if err != nil {
				return err
			}
			if flagJSON {
				return writeActivitiesJSON(cmd.OutOrStdout(), activities, map[domain.ActivityKey]bool{})
			}
			renderActivityTable(cmd.OutOrStdout(), activities, map[domain.ActivityKey]bool{})
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")
	return cmd
}

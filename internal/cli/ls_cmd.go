package cli

import (
	"github.com/mgreco/tempus/internal/domain"
	"github.com/spf13/cobra"
)

func newLsCmd(app *App) *cobra.Command {
	var (
		from, to     string
		sources      []string
		types        []string
		categories   string
		tags         string
		search       string
		minDur       int64
		maxDur       int64
		editableOnly bool
		flagJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List unified activities in a time window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start, end, err := windowFromFlags(from, to)
			if err != nil {
				return err
			}

			filter := &domain.ActivityFilter{SearchQuery: search}
			for _, s := range sources {
				st, err := parseSource(s)
				if err != nil {
					return err
				}
				filter.SourceTypes = append(filter.SourceTypes, st)
			}
			for _, t := range types {
				filter.ActivityTypes = append(filter.ActivityTypes, domain.ActivityType(t))
			}
			if filter.CategoryIDs, err = parseIDList(categories); err != nil {
				return err
			}
			if filter.TagIDs, err = parseIDList(tags); err != nil {
				return err
			}
			if cmd.Flags().Changed("min-duration") {
				filter.MinDurationSec = &minDur
			}
			if cmd.Flags().Changed("max-duration") {
				filter.MaxDurationSec = &maxDur
			}
			if editableOnly {
				yes := true
				filter.IsEditable = &yes
			}

			activities, err := app.Activities.Activities(ctx, start, end, filter)
			if err != nil {
				return err
			}
			conflicted, err := app.Activities.ConflictKeys(ctx, start, end)
			if err != nil {
				return err
			}

			if flagJSON {
				return writeActivitiesJSON(cmd.OutOrStdout(), activities, conflicted)
			}
			renderActivityTable(cmd.OutOrStdout(), activities, conflicted)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (YYYY-MM-DD or RFC3339, default today)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (YYYY-MM-DD or RFC3339, default tomorrow)")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "Source types to include (manual, automatic, pomodoro)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Activity types to include")
	cmd.Flags().StringVar(&categories, "category", "", "Comma-separated category ids")
	cmd.Flags().StringVar(&tags, "tag", "", "Comma-separated tag ids")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring match")
	cmd.Flags().Int64Var(&minDur, "min-duration", 0, "Minimum duration in seconds")
	cmd.Flags().Int64Var(&maxDur, "max-duration", 0, "Maximum duration in seconds")
	cmd.Flags().BoolVar(&editableOnly, "editable", false, "Only editable activities")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")
	return cmd
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var (
		source   string
		title    string
		startStr string
		endStr   string
		duration int64
		category string
		tags     string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>...",
		Short: "Edit activity fields, within the source type's editable set",
		Long: `Edits one or more activities. Which fields may change depends on the
source type: manual entries are fully editable, automatic captures only
accept category and tags, pomodoro focus sessions accept title and tags,
and breaks accept tags only. An update touching any other field is
rejected as a whole.

With multiple ids the update is applied as one transactional batch;
individual failures are reported but do not abort the rest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := parseSource(source)
			if err != nil {
				return err
			}
			keys, err := parseKeys(args, st)
			if err != nil {
				return err
			}

			var update domain.ActivityUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if startStr != "" {
				t, err := parseTimeFlag(startStr)
				if err != nil {
					return err
				}
				update.StartTime = &t
			}
			if endStr != "" {
				t, err := parseTimeFlag(endStr)
				if err != nil {
					return err
				}
				update.EndTime = &t
			}
			if cmd.Flags().Changed("duration") {
				update.DurationSec = &duration
			}
			if category != "" {
				update.CategorySet = true
				if category != "none" {
					id, err := strconv.ParseInt(category, 10, 64)
					if err != nil {
						return fmt.Errorf("invalid category id %q", category)
					}
					update.CategoryID = &id
				}
			}
			if cmd.Flags().Changed("tags") {
				ids, err := parseIDList(tags)
				if err != nil {
					return err
				}
				if ids == nil {
					ids = []int64{}
				}
				update.TagIDs = ids
			}
			if update.IsEmpty() {
				return fmt.Errorf("nothing to update")
			}

			if len(keys) == 1 {
				if err := app.Activities.UpdateActivity(ctx, keys[0].ID, st, update); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", keys[0])
				return nil
			}

			result, err := app.Activities.BulkUpdateActivities(ctx, keys, update)
			if err != nil {
				return err
			}
			printBulkResult(cmd, "updated", result.Updated, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "manual", "Source type of the activities")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&startStr, "start", "", "New start time")
	cmd.Flags().StringVar(&endStr, "end", "", "New end time")
	cmd.Flags().Int64Var(&duration, "duration", 0, "New duration in seconds")
	cmd.Flags().StringVar(&category, "category", "", "Category id, or 'none' to clear")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tag ids (replaces the full set)")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var (
		from     string
		to       string
		forStr   string
		category string
		tags     string
	)

	cmd := &cobra.Command{
		Use:   "log <task>",
		Short: "Log a manual time entry",
		Long: `Records a completed block of work. Either give an explicit range with
--from/--to, or a --for duration counted back from now.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start, end, err := rangeFromFlags(from, to, forStr)
			if err != nil {
				return err
			}
			categoryID, err := resolveCategory(ctx, app, category)
			if err != nil {
				return err
			}
			tagIDs, err := resolveTags(ctx, app, tags)
			if err != nil {
				return err
			}

			entry := &domain.TimeEntry{
				Task:        args[0],
				CategoryID:  categoryID,
				StartTime:   start,
				EndTime:     &end,
				DurationSec: int64(end.Sub(start).Seconds()),
			}
			if err := app.Entries.Create(ctx, entry); err != nil {
				return err
			}
			if len(tagIDs) > 0 {
				if err := app.Tags.SetTagsFor(ctx, entry.ID, domain.SourceManual.SourceTable(), tagIDs); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %q (%s/%d) %s\n",
				entry.Task, domain.SourceManual, entry.ID, formatDuration(entry.DurationSec))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start time (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "End time")
	cmd.Flags().StringVar(&forStr, "for", "", "Duration, e.g. 1h30m")
	cmd.Flags().StringVar(&category, "category", "", "Category name")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tag names")
	return cmd
}

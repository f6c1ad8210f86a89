package cli

import (
	"fmt"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *App) *cobra.Command {
	var (
		from      string
		to        string
		forStr    string
		title     string
		url       string
		domainStr string
		browser   bool
		idle      bool
		category  string
		tags      string
	)

	cmd := &cobra.Command{
		Use:   "track <app>",
		Short: "Record an app usage slice",
		Long: `Records a slice of application or browser time, the shape the passive
tracker writes. Useful for backfilling gaps by hand.`,
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
			if domainStr != "" || url != "" {
				browser = true
			}

			usage := &domain.AppUsage{
				AppName:     args[0],
				WindowTitle: title,
				Domain:      domainStr,
				URL:         url,
				IsBrowser:   browser,
				IsIdle:      idle,
				CategoryID:  categoryID,
				StartTime:   start,
				EndTime:     &end,
				DurationSec: int64(end.Sub(start).Seconds()),
			}
			if err := app.Usage.Create(ctx, usage); err != nil {
				return err
			}
			if len(tagIDs) > 0 {
				if err := app.Tags.SetTagsFor(ctx, usage.ID, domain.SourceAutomatic.SourceTable(), tagIDs); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracked %q (%s/%d) %s\n",
				usage.AppName, domain.SourceAutomatic, usage.ID, formatDuration(usage.DurationSec))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start time (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "End time")
	cmd.Flags().StringVar(&forStr, "for", "", "Duration, e.g. 45m")
	cmd.Flags().StringVar(&title, "title", "", "Window title")
	cmd.Flags().StringVar(&url, "url", "", "Page URL (implies --browser)")
	cmd.Flags().StringVar(&domainStr, "domain", "", "Site domain (implies --browser)")
	cmd.Flags().BoolVar(&browser, "browser", false, "Mark as browser time")
	cmd.Flags().BoolVar(&idle, "idle", false, "Mark as idle time")
	cmd.Flags().StringVar(&category, "category", "", "Category name")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tag names")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/spf13/cobra"
)

func newPomCmd(app *App) *cobra.Command {
	var (
		from        string
		to          string
		forStr      string
		sessionType string
		interrupted bool
		tags        string
	)

	cmd := &cobra.Command{
		Use:   "pom [label]",
		Short: "Record a pomodoro session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if forStr == "" && (from == "" || to == "") {
				forStr = "25m"
			}
			start, end, err := rangeFromFlags(from, to, forStr)
			if err != nil {
				return err
			}
			if sessionType != string(domain.SessionFocus) && sessionType != string(domain.SessionBreak) {
				return fmt.Errorf("invalid type %q (want focus or break)", sessionType)
			}
			tagIDs, err := resolveTags(ctx, app, tags)
			if err != nil {
				return err
			}

			label := ""
			if len(args) == 1 {
				label = args[0]
			}
			session := &domain.PomodoroSession{
				Label:       label,
				SessionType: domain.SessionType(sessionType),
				Completed:   !interrupted,
				Interrupted: interrupted,
				StartTime:   start,
				EndTime:     &end,
				DurationSec: int64(end.Sub(start).Seconds()),
			}
			if err := app.Pomodoros.Create(ctx, session); err != nil {
				return err
			}
			if len(tagIDs) > 0 {
				if err := app.Tags.SetTagsFor(ctx, session.ID, domain.SourcePomodoro.SourceTable(), tagIDs); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s session (%s/%d) %s\n",
				session.SessionType, domain.SourcePomodoro, session.ID, formatDuration(session.DurationSec))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start time (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "End time")
	cmd.Flags().StringVar(&forStr, "for", "", "Duration (default 25m)")
	cmd.Flags().StringVar(&sessionType, "type", string(domain.SessionFocus), "Session type: focus or break")
	cmd.Flags().BoolVar(&interrupted, "interrupted", false, "Mark the session interrupted")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tag names")
	return cmd
}

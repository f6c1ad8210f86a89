package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the tempus command tree.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tempus",
		Short: "Unified personal activity log over manual, automatic, and pomodoro sources",
		Long: `tempus records time from three independent sources — manually logged
entries, passively captured app/browser usage, and pomodoro sessions —
and unifies them into a single editable activity log with conflict
detection and merging.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newLsCmd(app),
		newShowCmd(app),
		newEditCmd(app),
		newRmCmd(app),
		newMergeCmd(app),
		newConflictsCmd(app),
		newStatsCmd(app),
		newSearchCmd(app),
		newLogCmd(app),
		newTrackCmd(app),
		newPomCmd(app),
		newTagCmd(app),
		newCategoryCmd(app),
	)
	return rootCmd
}

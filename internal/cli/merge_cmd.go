package cli

import (
	"fmt"

	"github.com/mgreco/tempus/internal/domain"
	"github.com/spf13/cobra"
)

func newMergeCmd(app *App) *cobra.Command {
	var (
		source   string
		strategy string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "merge <id>...",
		Short: "Merge activities into one surviving record",
		Long: `Merges activities of one source type into a single record. The
strategy selects the survivor: longest (by duration), earliest, or
latest (by start order). The merged record always spans the earliest
start to the latest end across all inputs, its duration is recomputed
from that range, and tags are unioned. All other inputs are deleted.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseSource(source)
			if err != nil {
				return err
			}
			if !domain.ValidMergeStrategies[strategy] {
				return fmt.Errorf("invalid strategy %q (want longest, earliest, or latest)", strategy)
			}
			keys, err := parseKeys(args, st)
			if err != nil {
				return err
			}

			ok, err := confirmDestructive(app, yes,
				fmt.Sprintf("Merge %d %s activities (strategy %s)?", len(keys), st, strategy))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			merged, err := app.Activities.MergeActivities(cmd.Context(), keys, domain.MergeStrategy(strategy))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged into %s\n", merged.Key())
			renderActivityDetail(cmd.OutOrStdout(), merged)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "manual", "Source type of the activities")
	cmd.Flags().StringVar(&strategy, "strategy", "longest", "Survivor selection: longest, earliest, latest")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation prompt")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/mgreco/tempus/internal/service"
	"github.com/spf13/cobra"
)

func newRmCmd(app *App) *cobra.Command {
	var (
		source string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete activities",
		Long: `Deletes activities from their source table. Deletion is always
permitted, even for activities whose fields are not editable.`,
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

			ok, err := confirmDestructive(app, yes,
				fmt.Sprintf("Delete %d %s activit(y|ies)?", len(keys), st))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if len(keys) == 1 {
				if err := app.Activities.DeleteActivity(ctx, keys[0].ID, st); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", keys[0])
				return nil
			}

			result, err := app.Activities.BulkDeleteActivities(ctx, keys)
			if err != nil {
				return err
			}
			printBulkResult(cmd, "deleted", result.Deleted, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "manual", "Source type of the activities")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation prompt")
	return cmd
}

func printBulkResult(cmd *cobra.Command, verb string, succeeded int, result *service.BulkResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d, failed %d\n", verb, succeeded, result.Failed)
	for _, e := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %v\n", e.Key, e.Err)
	}
}

package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var (
		source   string
		flagJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			st, err := parseSource(source)
			if err != nil {
				return err
			}
			a, err := app.Activities.Activity(cmd.Context(), id, st)
			if err != nil {
				return err
			}
			if flagJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toActivityJSON(a, false))
			}
			renderActivityDetail(cmd.OutOrStdout(), a)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "manual", "Source type of the activity")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")
	return cmd
}

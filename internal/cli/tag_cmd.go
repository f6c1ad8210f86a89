package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}
	cmd.AddCommand(newTagAddCmd(app))
	cmd.AddCommand(newTagLsCmd(app))
	return cmd
}

func newTagAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := app.Tags.CreateTag(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created tag %q (%d)\n", tag.Name, tag.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color, e.g. #ff8800")
	return cmd
}

func newTagLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := app.Tags.ListTags(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tags {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", t.ID, t.Name)
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(newCategoryAddCmd(app))
	cmd.AddCommand(newCategoryLsCmd(app))
	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Categories.Create(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %q (%d)\n", cat.Name, cat.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color, e.g. #3366ff")
	return cmd
}

func newCategoryLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

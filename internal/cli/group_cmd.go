package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wayplan/internal/cli/formatter"
)

func newGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage item groups",
	}

	cmd.AddCommand(
		newGroupToggleCmd(app),
		newGroupExtractCmd(app),
		newGroupDissolveCmd(app),
	)

	return cmd
}

func newGroupToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Group an item with the next one in its day, or split them",
		Long: `Toggle grouping between the item and its successor in the day's
render order. Two ungrouped neighbors get a fresh group; if one side
already has a group the other joins it; an already-merged pair splits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			result, err := app.Itinerary.Group(context.Background(), id)
			if err != nil {
				return err
			}
			if result.NoOp {
				fmt.Println(formatter.Dim("Nothing to do."))
				return nil
			}
			fmt.Printf("Toggled grouping for item #%d\n", id)
			return nil
		},
	}
}

func newGroupExtractCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "extract ID",
		Short: "Pull one item out of its group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			result, err := app.Itinerary.ExtractFromGroup(context.Background(), id)
			if err != nil {
				return err
			}
			if result.NoOp {
				fmt.Println(formatter.Dim("Nothing to do."))
				return nil
			}
			fmt.Printf("Extracted item #%d from its group\n", id)
			return nil
		},
	}
}

func newGroupDissolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dissolve GROUP",
		Short: "Ungroup every member of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Itinerary.UngroupAll(context.Background(), args[0])
			if err != nil {
				return err
			}
			if result.NoOp {
				fmt.Println(formatter.Dim("Nothing to do."))
				return nil
			}
			fmt.Printf("Dissolved group %s\n", args[0])
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wayplan/internal/cli/formatter"
	"wayplan/internal/contract"
)

func newMoveCmd(app *App) *cobra.Command {
	var day, variant, global, group string
	var before int64

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move an item into a day bucket",
		Long: `Move an item to the end of a day bucket, or splice it at an exact
position with --before. Both the source and the target bucket are
renumbered densely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			var result *contract.MutationResult
			if cmd.Flags().Changed("before") || cmd.Flags().Changed("group") {
				result, err = app.Itinerary.MoveHere(ctx, id, day, variant, global, group, before)
			} else {
				result, err = app.Itinerary.MoveToBucket(ctx, id, day, variant, global)
			}
			if err != nil {
				return err
			}
			if result.NoOp {
				fmt.Println(formatter.Dim("Nothing to do."))
				return nil
			}
			fmt.Printf("Moved item #%d to %s\n", id, day)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Target day key (day-N) or unassigned")
	cmd.Flags().StringVar(&variant, "variant", "", "Target per-day variant")
	cmd.Flags().StringVar(&global, "global", "", "Target global trip variant")
	cmd.Flags().StringVar(&group, "group", "", "Group to join at the target")
	cmd.Flags().Int64Var(&before, "before", 0, "Insert before this item id")
	_ = cmd.MarkFlagRequired("day")

	return cmd
}

func newReorderCmd(app *App) *cobra.Command {
	var day, variant, global string

	cmd := &cobra.Command{
		Use:   "reorder DRAG DROP",
		Short: "Reorder an item or group within the plan",
		Long: `Reorder the dragged unit relative to the drop target.

DRAG is an item id or "group:<id>" for a whole group moving as a block.
DROP is an item id (insert before it), "group:<id>" (insert before the
group's first member), or "end" (append to the bucket).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			drag, err := contract.ParseDragRef(args[0])
			if err != nil {
				return err
			}
			drop, err := contract.ParseDropRef(args[1])
			if err != nil {
				return err
			}

			result, err := app.Itinerary.Reorder(context.Background(), drag, drop, day, variant, global)
			if err != nil {
				return err
			}
			if result.NoOp {
				fmt.Println(formatter.Dim("Nothing to do."))
				return nil
			}
			fmt.Printf("Reordered %s in %s\n", args[0], day)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Target day key (day-N) or unassigned")
	cmd.Flags().StringVar(&variant, "variant", "", "Target per-day variant")
	cmd.Flags().StringVar(&global, "global", "", "Target global trip variant")
	_ = cmd.MarkFlagRequired("day")

	return cmd
}

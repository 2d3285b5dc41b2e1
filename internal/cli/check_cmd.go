package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wayplan/internal/cli/formatter"
)

func newCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Manage the trip checklist",
	}

	cmd.AddCommand(
		newCheckAddCmd(app),
		newCheckListCmd(app),
		newCheckToggleCmd(app),
		newCheckRemoveCmd(app),
	)

	return cmd
}

func newCheckAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a checklist entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Checklist.Add(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("Added checklist entry #%d\n", entry.ID)
			return nil
		},
	}
}

func newCheckListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List checklist entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Checklist.List(context.Background())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println(formatter.Dim("Checklist is empty."))
				return nil
			}
			fmt.Print(formatter.RenderChecklist(entries))
			return nil
		},
	}
}

func newCheckToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Toggle a checklist entry done/undone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("not a checklist id: %q", args[0])
			}
			entry, err := app.Checklist.Toggle(context.Background(), id)
			if err != nil {
				return err
			}
			state := "todo"
			if entry.Done {
				state = "done"
			}
			fmt.Printf("Marked #%d %s\n", entry.ID, state)
			return nil
		},
	}
}

func newCheckRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a checklist entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("not a checklist id: %q", args[0])
			}
			if err := app.Checklist.Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Removed checklist entry #%d\n", id)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wayplan/internal/cli/formatter"
	"wayplan/internal/domain"
)

const datetimeLayout = "2006-01-02 15:04"

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage itinerary items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemInspectCmd(app),
		newItemUpdateCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var title, place, notes, day, variant, global, category, at string
	var duration int
	var pin bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new itinerary item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--title is required")
				}
				form := itemAddForm(&title, &place, &day, &category, &at)
				if err := form.Run(); err != nil {
					return err
				}
			}

			i := &domain.Item{
				Title:           title,
				Place:           place,
				Notes:           notes,
				Day:             day,
				VariantID:       variant,
				GlobalVariantID: global,
				Category:        domain.Category(category),
				PinnedTime:      pin,
			}
			if cmd.Flags().Changed("duration") {
				i.DurationMin = &duration
			}
			if at != "" {
				dt, err := time.Parse(datetimeLayout, at)
				if err != nil {
					return fmt.Errorf("parsing --at: %w", err)
				}
				i.Datetime = &dt
			}

			if err := app.Items.Create(context.Background(), i); err != nil {
				return err
			}

			fmt.Printf("Created item %s (#%d)\n", i.Title, i.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&place, "place", "", "Place or address")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&day, "day", domain.DayUnassigned, "Day key (day-N) or unassigned")
	cmd.Flags().StringVar(&variant, "variant", "", "Per-day variant")
	cmd.Flags().StringVar(&global, "global", "", "Global trip variant")
	cmd.Flags().StringVar(&category, "category", string(domain.CategoryActivity),
		"Category (activity|transport|accommodation|free)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVar(&at, "at", "", `Datetime ("2006-01-02 15:04")`)
	cmd.Flags().BoolVar(&pin, "pin", false, "Pin the time of day during derivation")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Items.List(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println(formatter.Dim("No items yet. Try: wayplan item add --title ..."))
				return nil
			}
			fmt.Print(formatter.RenderItemTable(items))
			return nil
		},
	}
	return cmd
}

func newItemInspectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			i, err := app.Items.GetByID(context.Background(), id)
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(fmt.Sprintf("%s  %s\n\n", formatter.Bold(i.Title), formatter.CategoryBadge(i.Category)))
			b.WriteString(fmt.Sprintf("  %s  #%d\n", formatter.Dim("ID      "), i.ID))
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("DAY     "), i.Day))
			b.WriteString(fmt.Sprintf("  %s  %d\n", formatter.Dim("ORDER   "), i.Order))
			if i.Place != "" {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("PLACE   "), i.Place))
			}
			if i.GroupID != "" {
				b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("GROUP   "), i.GroupID))
			}
			if i.Datetime != nil {
				pin := ""
				if i.PinnedTime {
					pin = " " + formatter.PinMarker(true)
				}
				b.WriteString(fmt.Sprintf("  %s  %s%s\n", formatter.Dim("WHEN    "), i.Datetime.Format(datetimeLayout), pin))
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Dim("DURATION"), formatter.FormatMinutes(i.DurationOrDefault())))
			if i.Notes != "" {
				b.WriteString(fmt.Sprintf("\n%s\n", i.Notes))
			}

			fmt.Print(formatter.RenderBox("Item", b.String()))
			return nil
		},
	}
	return cmd
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var title, place, notes, day, category, at string
	var duration int
	var pin bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			i, err := app.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				i.Title = title
			}
			if cmd.Flags().Changed("place") {
				i.Place = place
			}
			if cmd.Flags().Changed("notes") {
				i.Notes = notes
			}
			if cmd.Flags().Changed("day") {
				i.Day = day
			}
			if cmd.Flags().Changed("category") {
				i.Category = domain.Category(category)
			}
			if cmd.Flags().Changed("duration") {
				i.DurationMin = &duration
			}
			if cmd.Flags().Changed("pin") {
				i.PinnedTime = pin
			}
			if cmd.Flags().Changed("at") {
				if at == "" {
					i.Datetime = nil
					i.PinnedTime = false
				} else {
					dt, err := time.Parse(datetimeLayout, at)
					if err != nil {
						return fmt.Errorf("parsing --at: %w", err)
					}
					i.Datetime = &dt
				}
			}

			if err := app.Items.Update(ctx, i); err != nil {
				return err
			}
			fmt.Printf("Updated item #%d\n", i.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&place, "place", "", "Place or address")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&day, "day", "", "Day key (day-N) or unassigned")
	cmd.Flags().StringVar(&category, "category", "", "Category (activity|transport|accommodation|free)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVar(&at, "at", "", `Datetime ("2006-01-02 15:04"); empty clears it`)
	cmd.Flags().BoolVar(&pin, "pin", false, "Pin the time of day during derivation")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Removed item #%d\n", id)
			return nil
		},
	}
	return cmd
}

func parseItemID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an item id: %q", s)
	}
	return id, nil
}

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wayplan/internal/cli/formatter"
	"wayplan/internal/domain"
)

const dateLayout = "2006-01-02"

func newVariantCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variant",
		Short: "Manage trip variants",
	}

	cmd.AddCommand(
		newVariantAddCmd(app),
		newVariantListCmd(app),
		newVariantUpdateCmd(app),
		newVariantRemoveCmd(app),
	)

	return cmd
}

func newVariantAddCmd(app *App) *cobra.Command {
	var name, start, end string
	var cities []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a trip variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := &domain.Variant{
				Name:      name,
				Cities:    cities,
				CreatedAt: time.Now().UTC(),
				UpdatedAt: time.Now().UTC(),
			}
			if start != "" {
				d, err := time.Parse(dateLayout, start)
				if err != nil {
					return fmt.Errorf("parsing --start: %w", err)
				}
				v.StartDate = &d
			}
			if end != "" {
				d, err := time.Parse(dateLayout, end)
				if err != nil {
					return fmt.Errorf("parsing --end: %w", err)
				}
				v.EndDate = &d
			}

			if err := app.Variants.Create(context.Background(), v); err != nil {
				return err
			}
			fmt.Printf("Created variant %s (%s)\n", v.Name, v.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Variant name")
	cmd.Flags().StringVar(&start, "start", "", "Trip start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Trip end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&cities, "city", nil, "City (repeatable)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newVariantListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trip variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			variants, err := app.Variants.List(context.Background())
			if err != nil {
				return err
			}
			headers := []string{"ID", "NAME", "START", "END", "CITIES"}
			rows := make([][]string, 0, len(variants))
			for _, v := range variants {
				start, end := "", ""
				if v.StartDate != nil {
					start = v.StartDate.Format(dateLayout)
				}
				if v.EndDate != nil {
					end = v.EndDate.Format(dateLayout)
				}
				rows = append(rows, []string{
					formatter.Dim(truncID(v.ID)),
					v.Name,
					start,
					end,
					strings.Join(v.Cities, ", "),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newVariantUpdateCmd(app *App) *cobra.Command {
	var name, start, end string
	var cities []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a trip variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			v, err := app.Variants.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				v.Name = name
			}
			if cmd.Flags().Changed("city") {
				v.Cities = cities
			}
			if cmd.Flags().Changed("start") {
				if start == "" {
					v.StartDate = nil
				} else {
					d, err := time.Parse(dateLayout, start)
					if err != nil {
						return fmt.Errorf("parsing --start: %w", err)
					}
					v.StartDate = &d
				}
			}
			if cmd.Flags().Changed("end") {
				if end == "" {
					v.EndDate = nil
				} else {
					d, err := time.Parse(dateLayout, end)
					if err != nil {
						return fmt.Errorf("parsing --end: %w", err)
					}
					v.EndDate = &d
				}
			}
			v.UpdatedAt = time.Now().UTC()

			if err := app.Variants.Update(ctx, v); err != nil {
				return err
			}
			fmt.Printf("Updated variant %s\n", v.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Variant name")
	cmd.Flags().StringVar(&start, "start", "", "Trip start date (YYYY-MM-DD); empty clears it")
	cmd.Flags().StringVar(&end, "end", "", "Trip end date (YYYY-MM-DD); empty clears it")
	cmd.Flags().StringSliceVar(&cities, "city", nil, "City (repeatable)")

	return cmd
}

func newVariantRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a trip variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Variants.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed variant %s\n", args[0])
			return nil
		},
	}
}

func truncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

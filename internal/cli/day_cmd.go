package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wayplan/internal/cli/formatter"
	"wayplan/internal/contract"
	"wayplan/internal/schedule"
)

func newDayCmd(app *App) *cobra.Command {
	var global string
	var overrides []string

	cmd := &cobra.Command{
		Use:   "day [DAY...]",
		Short: "Show the derived schedule for one or more days",
		Long: `Show the derived schedule of the active view. With no arguments every
day is shown. Per-day variant overrides select an alternative plan for
single days, e.g. --use day-2=rainy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.ViewRequest{
				GlobalVariantID: global,
				SelectedDays:    args,
			}
			if len(overrides) > 0 {
				req.DayVariants = make(map[string]string, len(overrides))
				for _, o := range overrides {
					day, variant, ok := strings.Cut(o, "=")
					if !ok {
						return fmt.Errorf("malformed --use %q, want day-N=variant", o)
					}
					req.DayVariants[day] = variant
				}
			}

			ctx := context.Background()
			resp, err := app.Views.DaySchedules(ctx, req)
			if err != nil {
				return err
			}
			segments, err := app.Segments.List(ctx)
			if err != nil {
				return err
			}
			lookup := schedule.BuildTransportLookup(segments)

			if len(resp.Days) == 0 {
				fmt.Println(formatter.Dim("Nothing planned."))
				return nil
			}
			for _, day := range resp.Days {
				fmt.Println(formatter.RenderDaySchedule(day, lookup))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&global, "global", "", "Global trip variant")
	cmd.Flags().StringArrayVar(&overrides, "use", nil, "Per-day variant override (day-N=variant, repeatable)")

	return cmd
}

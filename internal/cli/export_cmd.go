package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wayplan/internal/contract"
)

func newExportCmd(app *App) *cobra.Command {
	var global, out string
	var overrides []string

	cmd := &cobra.Command{
		Use:   "export [DAY...]",
		Short: "Export the derived schedule as iCalendar",
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

			ics, err := app.Export.ICS(context.Background(), req)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Print(ics)
				return nil
			}
			if err := os.WriteFile(out, []byte(ics), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&global, "global", "", "Global trip variant")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	cmd.Flags().StringArrayVar(&overrides, "use", nil, "Per-day variant override (day-N=variant, repeatable)")

	return cmd
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wayplan/internal/contract"
)

func newPlanCmd(app *App) *cobra.Command {
	var global string
	var overrides []string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Interactively rearrange the itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("plan requires an interactive terminal")
			}

			req := contract.ViewRequest{GlobalVariantID: global}
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

			p := tea.NewProgram(newPlanModel(app, req), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&global, "global", "", "Global trip variant")
	cmd.Flags().StringArrayVar(&overrides, "use", nil, "Per-day variant override (day-N=variant, repeatable)")

	return cmd
}

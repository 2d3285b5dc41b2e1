package cli

import (
	"github.com/spf13/cobra"

	"wayplan/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Items     service.ItemService
	Itinerary service.ItineraryService
	Variants  service.VariantService
	Segments  service.SegmentService
	Checklist service.ChecklistService
	Views     service.ViewService
	Export    service.ExportService

	// IsInteractive reports whether stdin is a terminal; forms and the
	// plan TUI are only offered when it returns true.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "wayplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "wayplan",
		Short: "Itinerary planner with ordered days and derived times",
	}

	root.AddCommand(
		newItemCmd(app),
		newVariantCmd(app),
		newMoveCmd(app),
		newReorderCmd(app),
		newGroupCmd(app),
		newTransportCmd(app),
		newDayCmd(app),
		newCheckCmd(app),
		newExportCmd(app),
		newPlanCmd(app),
	)

	return root
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"wayplan/internal/cli"
	"wayplan/internal/db"
	"wayplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.wayplan/wayplan.db
	dbPath := os.Getenv("WAYPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".wayplan", "wayplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	notifier := service.NewBucketNotifier()

	var observers []service.MutationObserver
	if os.Getenv("WAYPLAN_LOG_MUTATIONS") != "" {
		observers = append(observers, service.NewLogMutationObserver(os.Stderr))
	}

	views := service.NewViewService(uow, notifier)

	app := &cli.App{
		Items:     service.NewItemService(uow, notifier),
		Itinerary: service.NewItineraryService(uow, notifier, observers...),
		Variants:  service.NewVariantService(uow),
		Segments:  service.NewSegmentService(uow, notifier),
		Checklist: service.NewChecklistService(uow),
		Views:     views,
		Export:    service.NewExportService(views),
	}

	// Detect interactive terminal for forms and the plan TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

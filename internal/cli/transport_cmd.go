package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wayplan/internal/cli/formatter"
	"wayplan/internal/domain"
)

func newTransportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transport",
		Short: "Manage travel-time estimates between items",
	}

	cmd.AddCommand(
		newTransportSetCmd(app),
		newTransportOverrideCmd(app),
		newTransportListCmd(app),
	)

	return cmd
}

func newTransportSetCmd(app *App) *cobra.Command {
	var mode string
	var minutes int

	cmd := &cobra.Command{
		Use:   "set FROM TO",
		Short: "Record a travel-time estimate for an ordered pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			to, err := parseItemID(args[1])
			if err != nil {
				return err
			}
			seg, err := app.Segments.RecordEstimate(context.Background(),
				from, to, domain.TransportMode(mode), minutes)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s: %s %s\n", seg.ID,
				formatter.ModeBadge(seg.Mode), formatter.FormatMinutes(minutes))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(domain.TransportModeWalk),
		"Transport mode (walk|car|transit|flight|bike|manual)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Estimated minutes")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func newTransportOverrideCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "override FROM TO",
		Short: "Set a manual duration for an ordered pair",
		Long: `Set a manual travel duration. It only contributes to derived times
while no calculated estimate exists for the pair.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			to, err := parseItemID(args[1])
			if err != nil {
				return err
			}
			seg, err := app.Segments.SetOverride(context.Background(), from, to, minutes)
			if err != nil {
				return err
			}
			fmt.Printf("Override %s: %s\n", seg.ID, formatter.FormatMinutes(minutes))
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Manual minutes")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func newTransportListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded transport segments",
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := app.Segments.List(context.Background())
			if err != nil {
				return err
			}
			headers := []string{"PAIR", "MODE", "ESTIMATE", "OVERRIDE"}
			rows := make([][]string, 0, len(segments))
			for _, s := range segments {
				calc, override := "", ""
				if s.DurationCalcMin != nil {
					calc = formatter.FormatMinutes(*s.DurationCalcMin)
				}
				if s.DurationOverrideMin != nil {
					override = formatter.FormatMinutes(*s.DurationOverrideMin)
				}
				rows = append(rows, []string{s.ID, formatter.ModeBadge(s.Mode), calc, override})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

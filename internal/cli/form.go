package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"wayplan/internal/cli/formatter"
	"wayplan/internal/domain"
)

func wayplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// itemAddForm collects the fields of a new item interactively.
func itemAddForm(title, place, day, category, at *string) *huh.Form {
	names := make([]string, 0, len(domain.ValidCategories))
	for c := range domain.ValidCategories {
		names = append(names, c)
	}
	sort.Strings(names)
	categories := make([]huh.Option[string], 0, len(names))
	for _, c := range names {
		categories = append(categories, huh.NewOption(c, c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Visit the Louvre").
				Value(title).
				Validate(validateRequired),
			huh.NewInput().
				Title("Place (blank for none)").
				Placeholder("Rue de Rivoli, Paris").
				Value(place),
			huh.NewInput().
				Title("Day (day-N, blank for unassigned)").
				Placeholder("day-1").
				Value(day),
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(category),
			huh.NewInput().
				Title("Time (YYYY-MM-DD HH:MM, blank for none)").
				Placeholder("2026-07-01 14:30").
				Value(at).
				Validate(validateOptionalDatetime),
		),
	).WithTheme(wayplanHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalDatetime(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(datetimeLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD HH:MM format")
	}
	return nil
}

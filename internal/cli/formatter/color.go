package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wayplan/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryBadge returns a colored label for an item category.
func CategoryBadge(c domain.Category) string {
	switch c {
	case domain.CategoryActivity:
		return StyleGreen.Render("● activity")
	case domain.CategoryTransport:
		return StyleBlue.Render("→ transport")
	case domain.CategoryAccommodation:
		return StylePurple.Render("⌂ stay")
	case domain.CategoryFree:
		return StyleDim.Render("○ free")
	default:
		return StyleDim.Render(string(c))
	}
}

// ModeBadge returns a colored label for a transport mode.
func ModeBadge(m domain.TransportMode) string {
	switch m {
	case domain.TransportModeWalk:
		return StyleGreen.Render("walk")
	case domain.TransportModeCar:
		return StyleYellow.Render("car")
	case domain.TransportModeTransit:
		return StyleBlue.Render("transit")
	case domain.TransportModeFlight:
		return StyleRed.Render("flight")
	case domain.TransportModeBike:
		return StyleAqua.Render("bike")
	default:
		return StyleDim.Render(string(m))
	}
}

// PinMarker returns the marker shown next to a pinned start time.
func PinMarker(pinned bool) string {
	if pinned {
		return StyleYellow.Render("⚲")
	}
	return " "
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

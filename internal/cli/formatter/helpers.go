package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"wayplan/internal/schedule"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// DayLabel renders a day key with its resolved calendar date, e.g.
// "Day 3 — Wed, Jul 1". The unassigned bucket gets a plain label.
func DayLabel(day string, date time.Time) string {
	idx, err := schedule.DayIndex(day)
	if err != nil {
		return "Unassigned"
	}
	if date.IsZero() {
		return fmt.Sprintf("Day %d", idx)
	}
	return fmt.Sprintf("Day %d — %s", idx, date.Format("Mon, Jan 2"))
}

// ClockTime renders a derived start time as HH:MM; a zero time renders as
// a dimmed placeholder.
func ClockTime(t time.Time) string {
	if t.IsZero() {
		return StyleDim.Render("--:--")
	}
	return StyleFg.Render(t.Format("15:04"))
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	return t.Format("Jan 2, 2006")
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// GroupMarker renders the gutter marker that ties grouped neighbors
// together in a day listing.
func GroupMarker(groupID string) string {
	if groupID == "" {
		return " "
	}
	return StyleAqua.Render("┃")
}

package formatter

import (
	"fmt"
	"strings"

	"wayplan/internal/contract"
	"wayplan/internal/domain"
)

// RenderDaySchedule renders one day's derived schedule as an indented
// listing under a day header.
func RenderDaySchedule(day contract.DaySchedule, segments map[string]*domain.TransportSegment) string {
	var b strings.Builder
	b.WriteString(Header(DayLabel(day.Day, day.Date)))
	b.WriteString("\n")

	if len(day.Items) == 0 {
		b.WriteString(Dim("  (empty)\n"))
		return b.String()
	}

	for idx, sc := range day.Items {
		item := sc.Item
		b.WriteString(fmt.Sprintf("  %s %s %s  %s %s\n",
			ClockTime(sc.Start),
			PinMarker(item.PinnedTime),
			GroupMarker(item.GroupID),
			Bold(item.Title),
			CategoryBadge(item.Category),
		))
		if item.Place != "" {
			b.WriteString(fmt.Sprintf("            %s\n", Dim(item.Place)))
		}

		if idx+1 < len(day.Items) {
			seg, ok := segments[domain.SegmentID(item.ID, day.Items[idx+1].Item.ID)]
			if !ok {
				continue
			}
			if minutes, ok := seg.EffectiveDurationMin(); ok {
				b.WriteString(fmt.Sprintf("      %s %s %s\n",
					Dim("↓"), ModeBadge(seg.Mode), Dim(FormatMinutes(minutes))))
			}
		}
	}
	return b.String()
}

// RenderItemTable renders items as a flat table, used by list commands.
func RenderItemTable(items []*domain.Item) string {
	headers := []string{"ID", "TITLE", "DAY", "ORDER", "GROUP", "CATEGORY"}
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		group := ""
		if i.GroupID != "" {
			group = truncGroup(i.GroupID)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i.ID),
			i.Title,
			i.Day,
			fmt.Sprintf("%d", i.Order),
			Dim(group),
			CategoryBadge(i.Category),
		})
	}
	return RenderTable(headers, rows)
}

// RenderChecklist renders checklist entries with done markers.
func RenderChecklist(entries []*domain.ChecklistEntry) string {
	var b strings.Builder
	for _, e := range entries {
		mark := StyleDim.Render("[ ]")
		text := e.Text
		if e.Done {
			mark = StyleGreen.Render("[✔]")
			text = Dim(text)
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", Dim(fmt.Sprintf("%d", e.ID)), mark, text))
	}
	return b.String()
}

func truncGroup(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

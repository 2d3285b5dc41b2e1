package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"wayplan/internal/contract"
	"wayplan/internal/domain"
)

type exportService struct {
	views ViewService
}

func NewExportService(views ViewService) ExportService {
	return &exportService{views: views}
}

// ICS renders the derived schedule as an iCalendar document. Unassigned
// items have no derived time and are left out.
func (s *exportService) ICS(ctx context.Context, req contract.ViewRequest) (string, error) {
	resp, err := s.views.DaySchedules(ctx, req)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//wayplan//itinerary//EN")

	for _, day := range resp.Days {
		if day.Day == domain.DayUnassigned {
			continue
		}
		for _, sc := range day.Items {
			ev := cal.AddEvent(fmt.Sprintf("wayplan-item-%d", sc.Item.ID))
			ev.SetStartAt(sc.Start)
			ev.SetEndAt(sc.Start.Add(time.Duration(sc.Item.DurationOrDefault()) * time.Minute))
			ev.SetSummary(sc.Item.Title)
			if sc.Item.Place != "" {
				ev.SetLocation(sc.Item.Place)
			}
			if sc.Item.Notes != "" {
				ev.SetDescription(sc.Item.Notes)
			}
			ev.SetDtStampTime(sc.Item.UpdatedAt)
		}
	}
	return cal.Serialize(), nil
}

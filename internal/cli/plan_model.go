package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"wayplan/internal/cli/formatter"
	"wayplan/internal/contract"
	"wayplan/internal/domain"
	"wayplan/internal/schedule"
)

type viewLoadedMsg struct {
	resp   *contract.ViewResponse
	lookup schedule.TransportLookup
	err    error
}

type mutationDoneMsg struct {
	err error
}

// planModel is the interactive day planner. The cursor walks the flattened
// day/item grid; structural keys mutate through the itinerary service and
// paint an optimistic overlay until the reloaded view lands.
type planModel struct {
	app *App
	req contract.ViewRequest

	resp    *contract.ViewResponse
	lookup  schedule.TransportLookup
	overlay overlay

	dayIdx  int
	itemIdx int

	status string
	err    error

	vp    viewport.Model
	ready bool
}

func newPlanModel(app *App, req contract.ViewRequest) *planModel {
	return &planModel{app: app, req: req}
}

func (m *planModel) Init() tea.Cmd {
	return m.loadView()
}

func (m *planModel) loadView() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := m.app.Views.DaySchedules(ctx, m.req)
		if err != nil {
			return viewLoadedMsg{err: err}
		}
		segments, err := m.app.Segments.List(ctx)
		if err != nil {
			return viewLoadedMsg{err: err}
		}
		return viewLoadedMsg{resp: resp, lookup: schedule.BuildTransportLookup(segments)}
	}
}

func (m *planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	if m.ready {
		m.vp.SetContent(m.renderContent())
	}
	return model, cmd
}

const planFooterHeight = 2

func (m *planModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-planFooterHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - planFooterHeight
		}
		return m, nil

	case viewLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.resp = msg.resp
		m.lookup = msg.lookup
		m.overlay.Clear()
		m.err = nil
		m.clampCursor()
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.overlay.Clear()
		}
		return m, m.loadView()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// Unhandled keys fall through to the viewport for scrolling.
func (m *planModel) scroll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *planModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.status = "Reloading"
		return m, m.loadView()
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "J":
		return m, m.shiftItem(1)
	case "K":
		return m, m.shiftItem(-1)
	case "g":
		if item := m.currentItem(); item != nil {
			id := item.Item.ID
			m.status = "Grouping"
			return m, func() tea.Msg {
				_, err := m.app.Itinerary.Group(context.Background(), id)
				return mutationDoneMsg{err: err}
			}
		}
	case "x":
		if item := m.currentItem(); item != nil {
			id := item.Item.ID
			m.status = "Extracting"
			return m, func() tea.Msg {
				_, err := m.app.Itinerary.ExtractFromGroup(context.Background(), id)
				return mutationDoneMsg{err: err}
			}
		}
	case "m":
		return m, m.moveToNextDay()
	case "u":
		if item := m.currentItem(); item != nil {
			id := item.Item.ID
			m.status = "Parking"
			m.overlay.Add(pendingMove{ItemID: id, ToDay: domain.DayUnassigned, ToIndex: 1 << 30})
			return m, func() tea.Msg {
				_, err := m.app.Itinerary.MoveToBucket(context.Background(), id,
					domain.DayUnassigned, "", m.req.GlobalVariantID)
				return mutationDoneMsg{err: err}
			}
		}
	default:
		return m.scroll(msg)
	}
	return m, nil
}

// moveToNextDay appends the selected item to the end of the following day.
// Parked items start over at day one.
func (m *planModel) moveToNextDay() tea.Cmd {
	view := m.view()
	if view == nil || m.dayIdx >= len(view.Days) {
		return nil
	}
	day := view.Days[m.dayIdx]
	item := m.currentItem()
	if item == nil {
		return nil
	}

	target := schedule.DayKey(1)
	if idx, err := schedule.DayIndex(day.Day); err == nil {
		target = schedule.DayKey(idx + 1)
	}

	id := item.Item.ID
	m.status = "Moving to " + target
	m.overlay.Add(pendingMove{ItemID: id, ToDay: target, ToIndex: 1 << 30})
	variantID := m.req.DayVariants[target]
	return func() tea.Msg {
		_, err := m.app.Itinerary.MoveToBucket(context.Background(), id,
			target, variantID, m.req.GlobalVariantID)
		return mutationDoneMsg{err: err}
	}
}

// shiftItem moves the selected item one slot up or down within its day.
func (m *planModel) shiftItem(delta int) tea.Cmd {
	view := m.view()
	if view == nil || m.dayIdx >= len(view.Days) {
		return nil
	}
	day := view.Days[m.dayIdx]
	target := m.itemIdx + delta
	if m.itemIdx >= len(day.Items) || target < 0 || target >= len(day.Items) {
		return nil
	}

	item := day.Items[m.itemIdx].Item
	drag := contract.ItemDrag(item.ID)
	var drop contract.DropRef
	if delta > 0 {
		if target+1 < len(day.Items) {
			drop = contract.ItemDrop(day.Items[target+1].Item.ID)
		} else {
			drop = contract.BucketDrop()
		}
	} else {
		drop = contract.ItemDrop(day.Items[target].Item.ID)
	}

	m.overlay.Add(pendingMove{ItemID: item.ID, ToDay: day.Day, ToIndex: target})
	m.itemIdx = target
	m.status = "Reordering"

	dayKey, variantID := day.Day, m.req.DayVariants[day.Day]
	return func() tea.Msg {
		_, err := m.app.Itinerary.Reorder(context.Background(), drag, drop,
			dayKey, variantID, m.req.GlobalVariantID)
		return mutationDoneMsg{err: err}
	}
}

func (m *planModel) moveCursor(delta int) {
	view := m.view()
	if view == nil || len(view.Days) == 0 {
		return
	}
	m.itemIdx += delta
	for m.itemIdx < 0 {
		if m.dayIdx == 0 {
			m.itemIdx = 0
			return
		}
		m.dayIdx--
		m.itemIdx = len(view.Days[m.dayIdx].Items) - 1
		if m.itemIdx < 0 {
			m.itemIdx = 0
		}
	}
	for m.itemIdx >= len(view.Days[m.dayIdx].Items) {
		if m.dayIdx == len(view.Days)-1 {
			m.itemIdx = max(0, len(view.Days[m.dayIdx].Items)-1)
			return
		}
		m.dayIdx++
		m.itemIdx = 0
	}
}

func (m *planModel) clampCursor() {
	view := m.view()
	if view == nil || len(view.Days) == 0 {
		m.dayIdx, m.itemIdx = 0, 0
		return
	}
	if m.dayIdx >= len(view.Days) {
		m.dayIdx = len(view.Days) - 1
	}
	if n := len(view.Days[m.dayIdx].Items); m.itemIdx >= n {
		m.itemIdx = max(0, n-1)
	}
}

// view returns the loaded response with the optimistic overlay applied.
func (m *planModel) view() *contract.ViewResponse {
	return m.overlay.Apply(m.resp)
}

func (m *planModel) currentItem() *contract.ScheduledItem {
	view := m.view()
	if view == nil || m.dayIdx >= len(view.Days) {
		return nil
	}
	items := view.Days[m.dayIdx].Items
	if m.itemIdx >= len(items) {
		return nil
	}
	return &items[m.itemIdx]
}

func (m *planModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n" +
			formatter.Dim("r to retry, q to quit") + "\n"
	}
	if m.resp == nil {
		return formatter.Dim("Loading plan...") + "\n"
	}

	body := m.renderContent()
	if m.ready {
		m.vp.SetContent(body)
		body = m.vp.View()
	}
	return body + "\n" + m.footer()
}

func (m *planModel) renderContent() string {
	view := m.view()
	if view == nil {
		return ""
	}

	var b strings.Builder
	for di, day := range view.Days {
		b.WriteString(formatter.Header(formatter.DayLabel(day.Day, day.Date)))
		b.WriteString("\n")
		if len(day.Items) == 0 {
			b.WriteString(formatter.Dim("  (empty)\n"))
		}
		for ii, sc := range day.Items {
			cursor := "  "
			if di == m.dayIdx && ii == m.itemIdx {
				cursor = formatter.StyleHeader.Render("▸ ")
			}
			b.WriteString(fmt.Sprintf("%s%s %s %s\n",
				cursor,
				formatter.ClockTime(sc.Start),
				formatter.GroupMarker(sc.Item.GroupID),
				sc.Item.Title,
			))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *planModel) footer() string {
	status := m.status
	if !m.overlay.Empty() {
		status += " …"
	}
	help := formatter.Dim("j/k move · J/K reorder · g group · x extract · m next day · u park · r reload · q quit")
	if status != "" {
		return formatter.Dim(status) + "\n" + help + "\n"
	}
	return help + "\n"
}

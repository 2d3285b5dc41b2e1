package cli

import (
	"wayplan/internal/contract"
)

// pendingMove is a structural change the user has made in the TUI that has
// not yet been confirmed by a reload of the persisted view.
type pendingMove struct {
	ItemID  int64
	ToDay   string
	ToIndex int
}

// overlay applies not-yet-persisted moves on top of the last loaded view,
// so the TUI reflects a drag immediately while the mutation and the
// follow-up reload run in the background. Derived times are not
// recomputed by the overlay; the reload brings the authoritative ones.
type overlay struct {
	pending []pendingMove
}

func (o *overlay) Add(m pendingMove) {
	o.pending = append(o.pending, m)
}

// Clear drops all pending moves; called when a fresh view arrives.
func (o *overlay) Clear() {
	o.pending = nil
}

func (o *overlay) Empty() bool {
	return len(o.pending) == 0
}

// Apply returns a copy of resp with every pending move applied in order.
// Unknown item ids and days are skipped; the reload will reconcile.
func (o *overlay) Apply(resp *contract.ViewResponse) *contract.ViewResponse {
	if resp == nil || o.Empty() {
		return resp
	}

	out := &contract.ViewResponse{Days: make([]contract.DaySchedule, len(resp.Days))}
	for i, d := range resp.Days {
		out.Days[i] = contract.DaySchedule{Day: d.Day, Date: d.Date}
		out.Days[i].Items = append([]contract.ScheduledItem(nil), d.Items...)
	}

	for _, m := range o.pending {
		applyMove(out, m)
	}
	return out
}

func applyMove(resp *contract.ViewResponse, m pendingMove) {
	var moved *contract.ScheduledItem
	for di := range resp.Days {
		items := resp.Days[di].Items
		for ii := range items {
			if items[ii].Item.ID == m.ItemID {
				sc := items[ii]
				moved = &sc
				resp.Days[di].Items = append(items[:ii], items[ii+1:]...)
				break
			}
		}
		if moved != nil {
			break
		}
	}
	if moved == nil {
		return
	}

	for di := range resp.Days {
		if resp.Days[di].Day != m.ToDay {
			continue
		}
		items := resp.Days[di].Items
		idx := m.ToIndex
		if idx < 0 {
			idx = 0
		}
		if idx > len(items) {
			idx = len(items)
		}
		items = append(items[:idx], append([]contract.ScheduledItem{*moved}, items[idx:]...)...)
		resp.Days[di].Items = items
		return
	}
}

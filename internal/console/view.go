package console

import (
	"orderdesk/internal/form"
	"orderdesk/internal/model"
	"orderdesk/internal/notify"
	"orderdesk/internal/service"
)

// View is a point-in-time copy of the console state for rendering.
type View struct {
	Section        Section
	OwnerFilter    string
	StatusFilter   model.Status
	Orders         []model.Order
	CachedOrders   int
	Detail         *model.Order
	CurrentOrderID int64
	Draft          form.Draft
	Notifications  map[notify.Region][]notify.Notification
}

func (v View) DetailOpen() bool {
	return v.CurrentOrderID != 0
}

func (c *Controller) View() View {
	c.mu.Lock()
	v := View{
		Section:        c.section,
		OwnerFilter:    c.ownerFilter,
		StatusFilter:   c.statusFilter,
		CurrentOrderID: c.currentOrderID,
		Draft:          c.draft.Clone(),
	}
	if c.detail != nil {
		detail := *c.detail
		v.Detail = &detail
	}
	c.mu.Unlock()

	cached := c.cache.Snapshot()
	v.CachedOrders = len(cached)
	v.Orders = service.ApplyFilters(cached, v.OwnerFilter, v.StatusFilter)

	v.Notifications = map[notify.Region][]notify.Notification{
		notify.RegionOrders: c.notes.Active(notify.RegionOrders),
		notify.RegionCreate: c.notes.Active(notify.RegionCreate),
		notify.RegionDetail: c.notes.Active(notify.RegionDetail),
	}
	return v
}

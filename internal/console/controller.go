package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orderdesk/internal/form"
	"orderdesk/internal/model"
	"orderdesk/internal/notify"
	"orderdesk/internal/service"
)

type Section string

const (
	SectionList   Section = "orders"
	SectionCreate Section = "create"
)

var ErrUnknownSection = errors.New("unknown section")

// ParseSection maps a navigation value onto a section.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionList, SectionCreate:
		return Section(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
}

func (s Section) region() notify.Region {
	if s == SectionCreate {
		return notify.RegionCreate
	}
	return notify.RegionOrders
}

// Gateway is the backend the controller forwards user actions to.
type Gateway interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	CreateOrder(ctx context.Context, payload model.CreateOrderRequest) (*model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	CancelOrder(ctx context.Context, id int64) error
}

// Controller owns all console state. Every mutation goes through its methods;
// backend calls are made without holding the lock.
type Controller struct {
	gateway Gateway
	cache   *service.OrderCache
	notes   *notify.Notifier
	log     logrus.FieldLogger

	mu             sync.Mutex
	section        Section
	currentOrderID int64
	detail         *model.Order
	detailToken    uint64
	ownerFilter    string
	statusFilter   model.Status
	draft          *form.Draft
}

func New(gateway Gateway, cache *service.OrderCache, notes *notify.Notifier, logger logrus.FieldLogger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		gateway: gateway,
		cache:   cache,
		notes:   notes,
		log:     logger.WithField("component", "console"),
		section: SectionList,
		draft:   form.NewDraft(),
	}
}

// ActivateSection makes section the only active one. Activating the list
// always refetches the orders.
func (c *Controller) ActivateSection(ctx context.Context, section Section) error {
	if _, err := ParseSection(string(section)); err != nil {
		return err
	}

	c.mu.Lock()
	c.section = section
	c.mu.Unlock()

	if section == SectionList {
		return c.LoadOrders(ctx)
	}
	return nil
}

// LoadOrders replaces the cache with a fresh list. A response that arrives
// after a newer list has been applied is dropped, and so is its failure.
func (c *Controller) LoadOrders(ctx context.Context) error {
	token := c.cache.Begin()

	orders, err := c.gateway.ListOrders(ctx)
	if err != nil {
		if c.cache.Superseded(token) {
			c.log.WithError(err).WithField("token", token).Debug("ignoring failure of stale order list")
			return nil
		}
		c.log.WithError(err).Warn("failed to load orders")
		c.notes.ReportError(notify.RegionOrders, "Failed to load orders: "+err.Error())
		return err
	}

	if !c.cache.Commit(token, orders) {
		c.log.WithField("token", token).Debug("discarding stale order list")
	}
	return nil
}

// SetFilters stores the filter inputs used when rendering the list.
func (c *Controller) SetFilters(owner string, status model.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ownerFilter = owner
	c.statusFilter = status
}

// OpenDetail fetches one order and shows it in the overlay. If the overlay is
// closed or another order is opened before the fetch returns, the response is
// dropped.
func (c *Controller) OpenDetail(ctx context.Context, id int64) error {
	c.mu.Lock()
	c.detailToken++
	token := c.detailToken
	c.mu.Unlock()

	order, err := c.gateway.GetOrder(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.detailToken {
		c.log.WithField("order_id", id).Debug("discarding superseded order detail")
		return nil
	}
	if err != nil {
		c.log.WithError(err).WithField("order_id", id).Warn("failed to load order details")
		c.notes.ReportError(notify.RegionOrders, "Failed to load order details: "+err.Error())
		return err
	}

	c.detail = order
	c.currentOrderID = id
	return nil
}

// CloseDetail hides the overlay. Closing a closed overlay is a no-op.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeDetailLocked()
}

func (c *Controller) closeDetailLocked() {
	c.detailToken++
	c.detail = nil
	c.currentOrderID = 0
}

// CurrentOrderID reports the order open in the overlay, if any.
func (c *Controller) CurrentOrderID() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.currentOrderID, c.currentOrderID != 0
}

// UpdateStatus sends a new status for the open order. Nothing happens when no
// order is open or no status was chosen. On failure the overlay stays open
// so the action can be retried.
func (c *Controller) UpdateStatus(ctx context.Context, status model.Status) error {
	id, open := c.CurrentOrderID()
	if !open || status == "" {
		return nil
	}

	if err := c.gateway.UpdateStatus(ctx, id, status); err != nil {
		c.log.WithError(err).WithField("order_id", id).Warn("failed to update status")
		c.notes.ReportError(notify.RegionDetail, "Failed to update status: "+err.Error())
		return err
	}

	c.finishMutation("Order status updated successfully!")
	return c.LoadOrders(ctx)
}

// CancelOrder cancels the open order once the user confirmed it.
func (c *Controller) CancelOrder(ctx context.Context, confirmed bool) error {
	id, open := c.CurrentOrderID()
	if !open || !confirmed {
		return nil
	}

	if err := c.gateway.CancelOrder(ctx, id); err != nil {
		c.log.WithError(err).WithField("order_id", id).Warn("failed to cancel order")
		c.notes.ReportError(notify.RegionDetail, "Failed to cancel order: "+err.Error())
		return err
	}

	c.finishMutation("Order cancelled successfully!")
	return c.LoadOrders(ctx)
}

func (c *Controller) finishMutation(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.notes.ReportSuccess(c.section.region(), message)
	c.closeDetailLocked()
}

// SubmitCreate sends the current draft. On success the form is reset and the
// list reloaded; on failure both the form and the cache are left as they are.
func (c *Controller) SubmitCreate(ctx context.Context) error {
	c.mu.Lock()
	payload := form.BuildCreateRequest(c.draft)
	c.mu.Unlock()

	order, err := c.gateway.CreateOrder(ctx, payload)
	if err != nil {
		c.log.WithError(err).Warn("failed to create order")
		c.notes.ReportError(notify.RegionCreate, "Failed to create order: "+createFailure(err))
		return err
	}

	c.mu.Lock()
	c.notes.ReportSuccess(c.section.region(), fmt.Sprintf("Order created successfully! Order ID: %d", order.ID))
	c.draft.Reset()
	c.mu.Unlock()

	return c.LoadOrders(ctx)
}

func createFailure(err error) string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		if verr.Message == "" {
			return "Failed to create order"
		}
		return verr.Message
	}
	return err.Error()
}

// UpdateDraft records what the creation form currently shows.
func (c *Controller) UpdateDraft(userID, address string, rows []form.Row) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft.UserID = userID
	c.draft.ShippingAddress = address
	c.draft.SetRows(rows)
}

func (c *Controller) AddItemRow() form.Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.draft.AddRow()
}

func (c *Controller) RemoveItemRow(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.draft.RemoveRow(id)
}

func (c *Controller) DismissNotification(id uuid.UUID) bool {
	return c.notes.Dismiss(id)
}
